package communities

import "course-miniapp/internal/normalize"

const (
	TypeCity       = "city"
	TypeProfession = "profession"
)

var CommunityShape = normalize.NewShape("Community",
	normalize.Int("id", 0),
	normalize.String("title", "Untitled").NonEmpty(),
	normalize.OptionalString("description"),
	normalize.String("type", TypeCity).OneOf(TypeCity, TypeProfession),
	normalize.OptionalString("city"),
	normalize.OptionalString("category"),
	normalize.String("telegram_link", ""),
)

// Community is a Telegram group grouped by city or by profession.
type Community struct {
	ID           int64                    `json:"id"`
	Title        string                   `json:"title"`
	Description  normalize.Option[string] `json:"description"`
	Type         string                   `json:"type"`
	City         normalize.Option[string] `json:"city"`
	Category     normalize.Option[string] `json:"category"`
	TelegramLink string                   `json:"telegram_link"`
}

func fromRecord(r normalize.Record) Community {
	return Community{
		ID:           r.Int("id"),
		Title:        r.Str("title"),
		Description:  r.OptString("description"),
		Type:         r.Str("type"),
		City:         r.OptString("city"),
		Category:     r.OptString("category"),
		TelegramLink: r.Str("telegram_link"),
	}
}
