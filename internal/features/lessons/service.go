package lessons

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) Get(ctx context.Context, id int64) (*LessonDetail, error) {
	if err := validation.ValidatePositiveID(id, "lesson_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/lessons/%d", id)})
	if err != nil {
		return nil, err
	}
	d := detailFrom(LessonDetailShape.Normalize(raw))
	return &d, nil
}

// Complete marks the lesson as done for the caller.
func (s *Service) Complete(ctx context.Context, id int64) (*Completion, error) {
	if err := validation.ValidatePositiveID(id, "lesson_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/lessons/%d/complete", id)})
	if err != nil {
		return nil, err
	}
	c := completionFrom(CompletionShape.Normalize(raw))
	return &c, nil
}

// NextLesson returns the lesson following currentID in course order.
// Lessons are ordered by Order, ties broken by ID. ok is false when the
// current lesson is the last one or is not in the list.
func NextLesson(list []Lesson, currentID int64) (next Lesson, ok bool) {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b Lesson) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	i := slices.IndexFunc(sorted, func(l Lesson) bool { return l.ID == currentID })
	if i < 0 || i+1 >= len(sorted) {
		return Lesson{}, false
	}
	return sorted[i+1], true
}
