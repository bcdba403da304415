package reviews

import (
	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/normalize"
)

var (
	ReviewShape = normalize.NewShape("Review",
		normalize.Int("id", 0),
		normalize.Int("user_id", 0),
		normalize.Int("course_id", 0),
		normalize.String("user_name", "User").NonEmpty(),
		normalize.Int("rating", 0).Within(validation.MinRating, validation.MaxRating),
		normalize.OptionalString("comment"),
		normalize.Timestamp("created_at"),
		normalize.OptionalTimestamp("updated_at"),
	)

	RatingShape = normalize.NewShape("CourseRating",
		normalize.Int("course_id", 0),
		normalize.Number("average_rating", 0).Clamp(0, validation.MaxRating),
		normalize.Int("total_reviews", 0).NonNegative(),
		normalize.Counts("rating_distribution"),
	)

	deletedShape = normalize.NewShape("ReviewDeleted",
		normalize.String("message", ""),
	)
)

type Review struct {
	ID        int64                    `json:"id"`
	UserID    int64                    `json:"user_id"`
	CourseID  int64                    `json:"course_id"`
	UserName  string                   `json:"user_name"`
	Rating    int64                    `json:"rating"`
	Comment   normalize.Option[string] `json:"comment"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt normalize.Option[string] `json:"updated_at"`
}

// Rating aggregates a course's reviews; Distribution is keyed by star count.
type Rating struct {
	CourseID      int64            `json:"course_id"`
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int64            `json:"total_reviews"`
	Distribution  map[string]int64 `json:"rating_distribution"`
}

// CreateRequest creates or replaces the caller's review of a course.
type CreateRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func reviewFrom(r normalize.Record) Review {
	return Review{
		ID:        r.Int("id"),
		UserID:    r.Int("user_id"),
		CourseID:  r.Int("course_id"),
		UserName:  r.Str("user_name"),
		Rating:    r.Int("rating"),
		Comment:   r.OptString("comment"),
		CreatedAt: r.Str("created_at"),
		UpdatedAt: r.OptString("updated_at"),
	}
}

func reviewsFrom(raw any) []Review {
	records := ReviewShape.ListOf(raw)
	out := make([]Review, 0, len(records))
	for _, r := range records {
		out = append(out, reviewFrom(r))
	}
	return out
}

func ratingFrom(r normalize.Record) Rating {
	return Rating{
		CourseID:      r.Int("course_id"),
		AverageRating: r.Float("average_rating"),
		TotalReviews:  r.Int("total_reviews"),
		Distribution:  r.Counts("rating_distribution"),
	}
}
