package progress

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

// ByCourse returns per-lesson completion for one course.
func (s *Service) ByCourse(ctx context.Context, courseID int64) (*CourseProgress, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/progress/%d", courseID)})
	if err != nil {
		return nil, err
	}
	p := courseProgressFrom(CourseProgressShape.Normalize(raw))
	return &p, nil
}

// Overall returns totals across every purchased course.
func (s *Service) Overall(ctx context.Context) (*Overall, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/progress"})
	if err != nil {
		return nil, err
	}
	o := overallFrom(OverallShape.Normalize(raw))
	return &o, nil
}
