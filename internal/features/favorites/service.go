package favorites

import (
	"context"
	"fmt"
	"net/http"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/features/courses"
	"course-miniapp/internal/platform/apiclient"
)

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// List returns the favorite courses.
func (s *Service) List(ctx context.Context) ([]courses.Course, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/favorites"})
	if err != nil {
		return nil, err
	}
	return courses.ListFrom(raw), nil
}

func (s *Service) Add(ctx context.Context, courseID int64) (*State, error) {
	return s.call(ctx, http.MethodPost, "/favorites/%d", courseID)
}

func (s *Service) Remove(ctx context.Context, courseID int64) (*State, error) {
	return s.call(ctx, http.MethodDelete, "/favorites/%d", courseID)
}

func (s *Service) Check(ctx context.Context, courseID int64) (*State, error) {
	return s.call(ctx, http.MethodGet, "/favorites/check/%d", courseID)
}

func (s *Service) call(ctx context.Context, method, pathFormat string, courseID int64) (*State, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: method, Path: fmt.Sprintf(pathFormat, courseID)})
	if err != nil {
		return nil, err
	}
	st := stateFrom(StateShape.Normalize(raw))
	return &st, nil
}
