package profile

import (
	"context"
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

func (s *Service) Get(ctx context.Context) (*Profile, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/profile"})
	if err != nil {
		return nil, err
	}
	p := fromRecord(ProfileShape.Normalize(raw))
	return &p, nil
}

// Update validates req locally before sending it.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Profile, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: "/profile", Body: req})
	if err != nil {
		return nil, err
	}
	p := fromRecord(ProfileShape.Normalize(raw))
	return &p, nil
}

// DevUsers lists accounts available to the development identity switcher.
func (s *Service) DevUsers(ctx context.Context) (*DevUsers, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/profile/dev/users"})
	if err != nil {
		return nil, err
	}
	u := devUsersFrom(DevUsersShape.Normalize(raw))
	return &u, nil
}
