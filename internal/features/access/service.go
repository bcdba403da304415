package access

import (
	"context"
	"fmt"
	"net/http"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) Check(ctx context.Context) (*Status, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/access/check"})
	if err != nil {
		return nil, err
	}
	st := statusFrom(StatusShape.Normalize(raw))
	return &st, nil
}

func (s *Service) CheckCourse(ctx context.Context, courseID int64) (*CourseStatus, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/access/check-course/%d", courseID)})
	if err != nil {
		return nil, err
	}
	st := courseStatusFrom(CourseStatusShape.Normalize(raw))
	return &st, nil
}

// GrantDevAccess unlocks every course for the development identity.
func (s *Service) GrantDevAccess(ctx context.Context) (*DevGrant, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/access/grant-dev-access"})
	if err != nil {
		return nil, err
	}
	g := devGrantFrom(DevGrantShape.Normalize(raw))
	return &g, nil
}
