package reviews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// ByCourse pages through a course's reviews. Zero limit and offset keep
// the server defaults.
func (s *Service) ByCourse(ctx context.Context, courseID int64, limit, offset int) ([]Review, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, apperrors.NewValidationError("limit", "must not be negative")
	}
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset", "must not be negative")
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/reviews/course/%d", courseID), Query: q})
	if err != nil {
		return nil, err
	}
	return reviewsFrom(raw), nil
}

func (s *Service) Rating(ctx context.Context, courseID int64) (*Rating, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/reviews/course/%d/rating", courseID)})
	if err != nil {
		return nil, err
	}
	r := ratingFrom(RatingShape.Normalize(raw))
	return &r, nil
}

// Create posts a review. Rating and comment length are checked before
// anything is sent.
func (s *Service) Create(ctx context.Context, courseID int64, req CreateRequest) (*Review, error) {
	if err := validation.ValidatePositiveID(courseID, "course_id"); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/reviews/course/%d", courseID), Body: req})
	if err != nil {
		return nil, err
	}
	r := reviewFrom(ReviewShape.Normalize(raw))
	return &r, nil
}

// Delete removes one of the caller's reviews and returns the server message.
func (s *Service) Delete(ctx context.Context, reviewID int64) (string, error) {
	if err := validation.ValidatePositiveID(reviewID, "review_id"); err != nil {
		return "", err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/reviews/%d", reviewID)})
	if err != nil {
		return "", err
	}
	return deletedShape.Normalize(raw).Str("message"), nil
}

func (s *Service) My(ctx context.Context) ([]Review, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/reviews/my"})
	if err != nil {
		return nil, err
	}
	return reviewsFrom(raw), nil
}
