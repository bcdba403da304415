package lessons

import (
	"course-miniapp/internal/features/certificates"
	"course-miniapp/internal/normalize"
)

var (
	LessonShape = normalize.NewShape("Lesson",
		normalize.Int("id", 0),
		normalize.String("title", "Untitled").NonEmpty(),
		normalize.Int("order", 0),
		normalize.OptionalNumber("video_duration").Positive(),
		normalize.Bool("is_free", false),
	)

	LessonDetailShape = LessonShape.Extend("LessonDetail",
		normalize.Int("course_id", 0),
		normalize.OptionalString("description"),
		normalize.OptionalString("video_url"),
		normalize.OptionalString("pdf_url"),
	)

	CompletionShape = normalize.NewShape("LessonCompletion",
		normalize.String("status", ""),
		normalize.String("message", ""),
		normalize.Int("points_earned", 0).NonNegative(),
		normalize.Bool("course_completed", false),
		normalize.Object("certificate", certificates.CertificateShape),
	)
)

// Lesson is the short form listed inside a course.
type Lesson struct {
	ID            int64                     `json:"id"`
	Title         string                    `json:"title"`
	Order         int64                     `json:"order"`
	VideoDuration normalize.Option[float64] `json:"video_duration"`
	IsFree        bool                      `json:"is_free"`
}

type LessonDetail struct {
	Lesson
	CourseID    int64                    `json:"course_id"`
	Description normalize.Option[string] `json:"description"`
	VideoURL    normalize.Option[string] `json:"video_url"`
	PDFURL      normalize.Option[string] `json:"pdf_url"`
}

// Completion is the reply to marking a lesson as done. Certificate is set
// when completing the lesson finished the course.
type Completion struct {
	Status          string                    `json:"status"`
	Message         string                    `json:"message"`
	PointsEarned    int64                     `json:"points_earned"`
	CourseCompleted bool                      `json:"course_completed"`
	Certificate     *certificates.Certificate `json:"certificate"`
}

func FromRecord(r normalize.Record) Lesson {
	return Lesson{
		ID:            r.Int("id"),
		Title:         r.Str("title"),
		Order:         r.Int("order"),
		VideoDuration: r.OptFloat("video_duration"),
		IsFree:        r.Bool("is_free"),
	}
}

// ListFrom converts normalized lesson records.
func ListFrom(records []normalize.Record) []Lesson {
	out := make([]Lesson, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

func detailFrom(r normalize.Record) LessonDetail {
	return LessonDetail{
		Lesson:      FromRecord(r),
		CourseID:    r.Int("course_id"),
		Description: r.OptString("description"),
		VideoURL:    r.OptString("video_url"),
		PDFURL:      r.OptString("pdf_url"),
	}
}

func completionFrom(r normalize.Record) Completion {
	c := Completion{
		Status:          r.Str("status"),
		Message:         r.Str("message"),
		PointsEarned:    r.Int("points_earned"),
		CourseCompleted: r.Bool("course_completed"),
	}
	if cert := r.Object("certificate"); cert.Int("id") > 0 {
		v := certificates.FromRecord(cert)
		c.Certificate = &v
	}
	return c
}
