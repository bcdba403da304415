package leaderboard

import "course-miniapp/internal/normalize"

var (
	EntryShape = normalize.NewShape("LeaderboardEntry",
		normalize.Int("position", 0).NonNegative(),
		normalize.Int("user_id", 0),
		normalize.String("full_name", "User").NonEmpty(),
		normalize.Int("points", 0),
		normalize.Int("completed_courses", 0).NonNegative(),
		normalize.Int("completed_lessons", 0).NonNegative(),
	)

	MyPositionShape = normalize.NewShape("MyPosition",
		normalize.Int("position", 0),
		normalize.Int("points", 0),
		normalize.Int("completed_courses", 0),
		normalize.Int("completed_lessons", 0),
		normalize.Int("total_users", 0),
	)
)

type Entry struct {
	Position         int64  `json:"position"`
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	Points           int64  `json:"points"`
	CompletedCourses int64  `json:"completed_courses"`
	CompletedLessons int64  `json:"completed_lessons"`
}

type MyPosition struct {
	Position         int64 `json:"position"`
	Points           int64 `json:"points"`
	CompletedCourses int64 `json:"completed_courses"`
	CompletedLessons int64 `json:"completed_lessons"`
	TotalUsers       int64 `json:"total_users"`
}

func entryFrom(r normalize.Record) Entry {
	return Entry{
		Position:         r.Int("position"),
		UserID:           r.Int("user_id"),
		FullName:         r.Str("full_name"),
		Points:           r.Int("points"),
		CompletedCourses: r.Int("completed_courses"),
		CompletedLessons: r.Int("completed_lessons"),
	}
}
