package courses

import (
	"course-miniapp/internal/features/lessons"
	"course-miniapp/internal/normalize"
)

var (
	CourseShape = normalize.NewShape("Course",
		normalize.Int("id", 0),
		normalize.String("title", "Untitled").NonEmpty(),
		normalize.String("description", ""),
		normalize.String("category", ""),
		normalize.OptionalString("cover_image_url"),
		normalize.Bool("is_top", false),
		normalize.Number("price", 0).NonNegative(),
		normalize.OptionalNumber("duration_hours").Positive(),
	)

	CourseDetailShape = CourseShape.Extend("CourseDetail",
		normalize.OptionalString("full_description"),
		normalize.List("lessons", lessons.LessonShape),
	)

	ProgressSummaryShape = normalize.NewShape("CourseProgressSummary",
		normalize.Int("total_lessons", 0).NonNegative(),
		normalize.Int("completed_lessons", 0).NonNegative(),
		normalize.Number("progress_percent", 0).Clamp(0, 100),
		normalize.OptionalTimestamp("purchased_at"),
		normalize.Bool("is_completed", false),
	)

	MyCourseShape = CourseShape.Extend("MyCourse",
		normalize.Object("progress", ProgressSummaryShape),
	)
)

type Course struct {
	ID            int64                     `json:"id"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Category      string                    `json:"category"`
	CoverImageURL normalize.Option[string]  `json:"cover_image_url"`
	IsTop         bool                      `json:"is_top"`
	Price         float64                   `json:"price"`
	DurationHours normalize.Option[float64] `json:"duration_hours"`
}

type CourseDetail struct {
	Course
	FullDescription normalize.Option[string] `json:"full_description"`
	Lessons         []lessons.Lesson         `json:"lessons"`
}

// ProgressSummary is the per-course progress attached to purchased courses.
type ProgressSummary struct {
	TotalLessons     int64                    `json:"total_lessons"`
	CompletedLessons int64                    `json:"completed_lessons"`
	ProgressPercent  float64                  `json:"progress_percent"`
	PurchasedAt      normalize.Option[string] `json:"purchased_at"`
	IsCompleted      bool                     `json:"is_completed"`
}

type MyCourse struct {
	Course
	Progress ProgressSummary `json:"progress"`
}

func FromRecord(r normalize.Record) Course {
	return Course{
		ID:            r.Int("id"),
		Title:         r.Str("title"),
		Description:   r.Str("description"),
		Category:      r.Str("category"),
		CoverImageURL: r.OptString("cover_image_url"),
		IsTop:         r.Bool("is_top"),
		Price:         r.Float("price"),
		DurationHours: r.OptFloat("duration_hours"),
	}
}

// ListFrom normalizes a course array payload.
func ListFrom(raw any) []Course {
	records := CourseShape.ListOf(raw)
	out := make([]Course, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

func detailFrom(r normalize.Record) CourseDetail {
	return CourseDetail{
		Course:          FromRecord(r),
		FullDescription: r.OptString("full_description"),
		Lessons:         lessons.ListFrom(r.List("lessons")),
	}
}

func myCourseFrom(r normalize.Record) MyCourse {
	p := r.Object("progress")
	return MyCourse{
		Course: FromRecord(r),
		Progress: ProgressSummary{
			TotalLessons:     p.Int("total_lessons"),
			CompletedLessons: p.Int("completed_lessons"),
			ProgressPercent:  p.Float("progress_percent"),
			PurchasedAt:      p.OptString("purchased_at"),
			IsCompleted:      p.Bool("is_completed"),
		},
	}
}
