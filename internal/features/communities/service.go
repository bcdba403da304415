package communities

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

type Filter struct {
	Type     string
	City     string
	Category string
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	return q
}

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Community, error) {
	if filter.Type != "" && filter.Type != TypeCity && filter.Type != TypeProfession {
		return nil, validation.NewOneOfError("type", TypeCity, TypeProfession)
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/communities", Query: filter.query()})
	if err != nil {
		return nil, err
	}
	records := CommunityShape.ListOf(raw)
	out := make([]Community, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Community, error) {
	if err := validation.ValidatePositiveID(id, "community_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/communities/%d", id)})
	if err != nil {
		return nil, err
	}
	c := fromRecord(CommunityShape.Normalize(raw))
	return &c, nil
}
