package challenges

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

// List returns active challenges annotated with the caller's participation.
func (s *Service) List(ctx context.Context) ([]Challenge, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/challenges"})
	if err != nil {
		return nil, err
	}
	return listFrom(raw), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Challenge, error) {
	if err := validation.ValidatePositiveID(id, "challenge_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/challenges/%d", id)})
	if err != nil {
		return nil, err
	}
	c := fromRecord(ChallengeShape.Normalize(raw))
	return &c, nil
}

// Join enrolls the caller. Joining twice is not an error on the server.
func (s *Service) Join(ctx context.Context, id int64) (*JoinResult, error) {
	if err := validation.ValidatePositiveID(id, "challenge_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/challenges/%d/join", id)})
	if err != nil {
		return nil, err
	}
	r := JoinShape.Normalize(raw)
	return &JoinResult{Message: r.Str("message"), Joined: r.Bool("joined")}, nil
}

// My returns the challenges the caller joined.
func (s *Service) My(ctx context.Context) ([]Challenge, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/challenges/my"})
	if err != nil {
		return nil, err
	}
	return listFrom(raw), nil
}
