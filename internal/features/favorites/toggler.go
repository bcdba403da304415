package favorites

import (
	"context"
	"net/http"
	"strings"
	"sync"

	apperrors "course-miniapp/internal/common/errors"
)

const (
	msgAlreadyFavorite = "уже в избранном"
	msgNotFavorite     = "не в избранном"
)

type backend interface {
	Add(ctx context.Context, courseID int64) (*State, error)
	Remove(ctx context.Context, courseID int64) (*State, error)
	Check(ctx context.Context, courseID int64) (*State, error)
}

// Toggler keeps local favorite flags in the way a course card does: the flag
// flips before the call and is rolled back if the call fails.
type Toggler struct {
	svc backend

	mu    sync.Mutex
	flags map[int64]bool
}

func NewToggler(svc backend) *Toggler {
	return &Toggler{svc: svc, flags: make(map[int64]bool)}
}

// IsFavorite returns the local flag.
func (t *Toggler) IsFavorite(courseID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags[courseID]
}

// Set seeds the local flag, e.g. from a favorites listing.
func (t *Toggler) Set(courseID int64, favorite bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flags[courseID] = favorite
}

// Refresh replaces the local flag with the server's. A reply without a
// boolean counts as not favorite.
func (t *Toggler) Refresh(ctx context.Context, courseID int64) (bool, error) {
	st, err := t.svc.Check(ctx, courseID)
	if err != nil {
		return t.IsFavorite(courseID), err
	}
	fav := st.IsFavorite.OrElse(false)
	t.Set(courseID, fav)
	return fav, nil
}

// Toggle flips the flag and persists it. A successful call keeps the flipped
// value unless the reply states is_favorite explicitly. Errors saying the
// course already is in the wanted state count as success; any other failure
// restores the previous value and returns it with the error.
func (t *Toggler) Toggle(ctx context.Context, courseID int64) (bool, error) {
	t.mu.Lock()
	prev := t.flags[courseID]
	want := !prev
	t.flags[courseID] = want
	t.mu.Unlock()

	var (
		st  *State
		err error
	)
	if prev {
		st, err = t.svc.Remove(ctx, courseID)
	} else {
		st, err = t.svc.Add(ctx, courseID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		if alreadySettled(err, want) {
			t.flags[courseID] = want
			return want, nil
		}
		t.flags[courseID] = prev
		return prev, err
	}
	fav := want
	if st != nil {
		fav = st.IsFavorite.OrElse(want)
	}
	t.flags[courseID] = fav
	return fav, nil
}

// alreadySettled reports whether err says the server already holds want.
func alreadySettled(err error, want bool) bool {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.IsTransport() {
		return false
	}
	if !want {
		return appErr.Status == http.StatusNotFound || strings.Contains(appErr.Message, msgNotFavorite)
	}
	if strings.Contains(appErr.Message, msgAlreadyFavorite) {
		return true
	}
	payload, _ := appErr.Payload.(map[string]any)
	fav, _ := payload["is_favorite"].(bool)
	return fav
}
