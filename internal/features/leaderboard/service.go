package leaderboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/platform/apiclient"
)

// MaxLimit is the largest page the backend serves.
const MaxLimit = 100

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// Top ranks users by points. limit 0 keeps the server default.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	return s.list(ctx, "/leaderboard", limit)
}

// TopByCourses ranks users by completed courses.
func (s *Service) TopByCourses(ctx context.Context, limit int) ([]Entry, error) {
	return s.list(ctx, "/leaderboard/courses", limit)
}

func (s *Service) MyPosition(ctx context.Context) (*MyPosition, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/leaderboard/my-position"})
	if err != nil {
		return nil, err
	}
	r := MyPositionShape.Normalize(raw)
	return &MyPosition{
		Position:         r.Int("position"),
		Points:           r.Int("points"),
		CompletedCourses: r.Int("completed_courses"),
		CompletedLessons: r.Int("completed_lessons"),
		TotalUsers:       r.Int("total_users"),
	}, nil
}

func (s *Service) list(ctx context.Context, path string, limit int) ([]Entry, error) {
	if limit < 0 || limit > MaxLimit {
		return nil, apperrors.NewValidationError("limit", "must be between 1 and 100")
	}
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path, Query: q})
	if err != nil {
		return nil, err
	}
	records := EntryShape.ListOf(raw)
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		out = append(out, entryFrom(r))
	}
	return out, nil
}
