package certificates

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

// List returns the caller's certificates.
func (s *Service) List(ctx context.Context) ([]Certificate, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/certificates"})
	if err != nil {
		return nil, err
	}
	records := CertificateShape.ListOf(raw)
	out := make([]Certificate, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out, nil
}

// ByCourse returns the certificate issued for a course.
func (s *Service) ByCourse(ctx context.Context, courseID int64) (*Certificate, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/certificates/course/%d", courseID)})
	if err != nil {
		return nil, err
	}
	c := FromRecord(CertificateShape.Normalize(raw))
	return &c, nil
}

// Download fetches the certificate file.
func (s *Service) Download(ctx context.Context, certificateID int64) (*apiclient.RawResponse, error) {
	if err := validation.ValidatePositiveID(certificateID, "certificate_id"); err != nil {
		return nil, err
	}
	return s.api.GetRaw(ctx, fmt.Sprintf("/certificates/%d/download", certificateID))
}
