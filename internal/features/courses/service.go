package courses

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

// Filter narrows the catalog. Zero values are not sent.
type Filter struct {
	Category string
	IsTop    *bool
	Search   string
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.IsTop != nil {
		q.Set("is_top", strconv.FormatBool(*f.IsTop))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// List returns the active catalog.
func (s *Service) List(ctx context.Context, filter Filter) ([]Course, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/courses", Query: filter.query()})
	if err != nil {
		return nil, err
	}
	return ListFrom(raw), nil
}

// Get returns a course with its lesson list.
func (s *Service) Get(ctx context.Context, id int64) (*CourseDetail, error) {
	if err := validation.ValidatePositiveID(id, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/courses/%d", id)})
	if err != nil {
		return nil, err
	}
	d := detailFrom(CourseDetailShape.Normalize(raw))
	return &d, nil
}

// My returns the purchased courses with progress, newest purchase first.
func (s *Service) My(ctx context.Context) ([]MyCourse, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/courses/my/courses"})
	if err != nil {
		return nil, err
	}
	records := MyCourseShape.ListOf(raw)
	out := make([]MyCourse, 0, len(records))
	for _, r := range records {
		out = append(out, myCourseFrom(r))
	}
	return out, nil
}
