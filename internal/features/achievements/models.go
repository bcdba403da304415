package achievements

import "course-miniapp/internal/normalize"

var AchievementShape = normalize.NewShape("Achievement",
	normalize.Int("id", 0),
	normalize.String("title", "Untitled").NonEmpty(),
	normalize.String("description", ""),
	normalize.OptionalString("icon_url"),
	normalize.Int("points", 0).NonNegative(),
	normalize.String("condition_type", ""),
	normalize.Int("condition_value", 0).NonNegative(),
	normalize.Bool("earned", false),
	normalize.OptionalTimestamp("earned_at"),
)

type Achievement struct {
	ID             int64                    `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	IconURL        normalize.Option[string] `json:"icon_url"`
	Points         int64                    `json:"points"`
	ConditionType  string                   `json:"condition_type"`
	ConditionValue int64                    `json:"condition_value"`
	Earned         bool                     `json:"earned"`
	EarnedAt       normalize.Option[string] `json:"earned_at"`
}

func fromRecord(r normalize.Record) Achievement {
	return Achievement{
		ID:             r.Int("id"),
		Title:          r.Str("title"),
		Description:    r.Str("description"),
		IconURL:        r.OptString("icon_url"),
		Points:         r.Int("points"),
		ConditionType:  r.Str("condition_type"),
		ConditionValue: r.Int("condition_value"),
		Earned:         r.Bool("earned"),
		EarnedAt:       r.OptString("earned_at"),
	}
}
