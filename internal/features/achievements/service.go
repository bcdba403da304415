package achievements

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

// List returns every achievement with the caller's earned flag.
func (s *Service) List(ctx context.Context) ([]Achievement, error) {
	return s.list(ctx, "/achievements")
}

// My returns only earned achievements.
func (s *Service) My(ctx context.Context) ([]Achievement, error) {
	return s.list(ctx, "/achievements/my")
}

func (s *Service) Get(ctx context.Context, id int64) (*Achievement, error) {
	if err := validation.ValidatePositiveID(id, "achievement_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/achievements/%d", id)})
	if err != nil {
		return nil, err
	}
	a := fromRecord(AchievementShape.Normalize(raw))
	return &a, nil
}

func (s *Service) list(ctx context.Context, path string) ([]Achievement, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	records := AchievementShape.ListOf(raw)
	out := make([]Achievement, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out, nil
}
