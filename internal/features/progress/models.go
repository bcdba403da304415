package progress

import "course-miniapp/internal/normalize"

var (
	LessonStateShape = normalize.NewShape("LessonProgress",
		normalize.Int("id", 0),
		normalize.String("title", ""),
		normalize.Int("order", 0),
		normalize.Bool("completed", false),
	)

	CourseProgressShape = normalize.NewShape("CourseProgress",
		normalize.Int("course_id", 0),
		normalize.String("course_title", ""),
		normalize.Int("total_lessons", 0).NonNegative(),
		normalize.Int("completed_lessons", 0).NonNegative(),
		normalize.Number("progress_percent", 0).Clamp(0, 100),
		normalize.List("lessons", LessonStateShape),
	)

	OverallShape = normalize.NewShape("OverallProgress",
		normalize.Int("total_courses", 0).NonNegative(),
		normalize.Int("completed_courses", 0).NonNegative(),
		normalize.Int("in_progress_courses", 0).NonNegative(),
		normalize.Int("total_lessons_completed", 0).NonNegative(),
	)
)

type LessonState struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Order     int64  `json:"order"`
	Completed bool   `json:"completed"`
}

type CourseProgress struct {
	CourseID         int64         `json:"course_id"`
	CourseTitle      string        `json:"course_title"`
	TotalLessons     int64         `json:"total_lessons"`
	CompletedLessons int64         `json:"completed_lessons"`
	ProgressPercent  float64       `json:"progress_percent"`
	Lessons          []LessonState `json:"lessons"`
}

type Overall struct {
	TotalCourses          int64 `json:"total_courses"`
	CompletedCourses      int64 `json:"completed_courses"`
	InProgressCourses     int64 `json:"in_progress_courses"`
	TotalLessonsCompleted int64 `json:"total_lessons_completed"`
}

func courseProgressFrom(r normalize.Record) CourseProgress {
	records := r.List("lessons")
	states := make([]LessonState, 0, len(records))
	for _, l := range records {
		states = append(states, LessonState{
			ID:        l.Int("id"),
			Title:     l.Str("title"),
			Order:     l.Int("order"),
			Completed: l.Bool("completed"),
		})
	}
	return CourseProgress{
		CourseID:         r.Int("course_id"),
		CourseTitle:      r.Str("course_title"),
		TotalLessons:     r.Int("total_lessons"),
		CompletedLessons: r.Int("completed_lessons"),
		ProgressPercent:  r.Float("progress_percent"),
		Lessons:          states,
	}
}

func overallFrom(r normalize.Record) Overall {
	return Overall{
		TotalCourses:          r.Int("total_courses"),
		CompletedCourses:      r.Int("completed_courses"),
		InProgressCourses:     r.Int("in_progress_courses"),
		TotalLessonsCompleted: r.Int("total_lessons_completed"),
	}
}
