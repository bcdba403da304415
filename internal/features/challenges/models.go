package challenges

import "course-miniapp/internal/normalize"

var (
	ChallengeShape = normalize.NewShape("Challenge",
		normalize.Int("id", 0),
		normalize.String("title", "Untitled").NonEmpty(),
		normalize.String("description", ""),
		normalize.OptionalString("icon_url"),
		normalize.Int("points_reward", 0).NonNegative(),
		normalize.String("condition_type", ""),
		normalize.Int("condition_value", 0).NonNegative(),
		normalize.OptionalTimestamp("start_date"),
		normalize.OptionalTimestamp("end_date"),
		normalize.Bool("is_active", true),
		normalize.OptionalInt("user_progress"),
		normalize.Bool("user_completed", false),
		normalize.Bool("user_joined", false),
	)

	JoinShape = normalize.NewShape("ChallengeJoin",
		normalize.String("message", ""),
		normalize.Bool("joined", false),
	)
)

type Challenge struct {
	ID             int64                    `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	IconURL        normalize.Option[string] `json:"icon_url"`
	PointsReward   int64                    `json:"points_reward"`
	ConditionType  string                   `json:"condition_type"`
	ConditionValue int64                    `json:"condition_value"`
	StartDate      normalize.Option[string] `json:"start_date"`
	EndDate        normalize.Option[string] `json:"end_date"`
	IsActive       bool                     `json:"is_active"`
	UserProgress   normalize.Option[int64]  `json:"user_progress"`
	UserCompleted  bool                     `json:"user_completed"`
	UserJoined     bool                     `json:"user_joined"`
}

type JoinResult struct {
	Message string `json:"message"`
	Joined  bool   `json:"joined"`
}

func fromRecord(r normalize.Record) Challenge {
	return Challenge{
		ID:             r.Int("id"),
		Title:          r.Str("title"),
		Description:    r.Str("description"),
		IconURL:        r.OptString("icon_url"),
		PointsReward:   r.Int("points_reward"),
		ConditionType:  r.Str("condition_type"),
		ConditionValue: r.Int("condition_value"),
		StartDate:      r.OptString("start_date"),
		EndDate:        r.OptString("end_date"),
		IsActive:       r.Bool("is_active"),
		UserProgress:   r.OptInt("user_progress"),
		UserCompleted:  r.Bool("user_completed"),
		UserJoined:     r.Bool("user_joined"),
	}
}

func listFrom(raw any) []Challenge {
	records := ChallengeShape.ListOf(raw)
	out := make([]Challenge, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out
}
