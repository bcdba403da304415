package profile

import "course-miniapp/internal/normalize"

var (
	ProfileShape = normalize.NewShape("Profile",
		normalize.Int("id", 0),
		normalize.Int("telegram_id", 0),
		normalize.OptionalString("username"),
		normalize.String("full_name", "User").NonEmpty(),
		normalize.String("phone", "not specified").NonEmpty(),
		normalize.OptionalString("email"),
		normalize.OptionalString("city"),
		normalize.Int("points", 0),
		normalize.Timestamp("created_at"),
	)

	DevUserShape = normalize.NewShape("DevUser",
		normalize.Int("id", 0),
		normalize.DecimalString("telegram_id"),
		normalize.String("full_name", "User").NonEmpty(),
		normalize.OptionalString("username"),
		normalize.String("phone", "not specified").NonEmpty(),
	)

	DevUsersShape = normalize.NewShape("DevUsers",
		normalize.List("users", DevUserShape),
		normalize.Int("total", 0).NonNegative(),
	)
)

type Profile struct {
	ID         int64                    `json:"id"`
	TelegramID int64                    `json:"telegram_id"`
	Username   normalize.Option[string] `json:"username"`
	FullName   string                   `json:"full_name"`
	Phone      string                   `json:"phone"`
	Email      normalize.Option[string] `json:"email"`
	City       normalize.Option[string] `json:"city"`
	Points     int64                    `json:"points"`
	CreatedAt  string                   `json:"created_at"`
}

// DevUser is an account the development identity can switch to.
type DevUser struct {
	ID         int64                    `json:"id"`
	TelegramID string                   `json:"telegram_id"`
	FullName   string                   `json:"full_name"`
	Username   normalize.Option[string] `json:"username"`
	Phone      string                   `json:"phone"`
}

type DevUsers struct {
	Users []DevUser `json:"users"`
	Total int64     `json:"total"`
}

// UpdateRequest is a partial profile update; nil fields are left unchanged.
type UpdateRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,notblank,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,notblank,max=32"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=128"`
}

func fromRecord(r normalize.Record) Profile {
	return Profile{
		ID:         r.Int("id"),
		TelegramID: r.Int("telegram_id"),
		Username:   r.OptString("username"),
		FullName:   r.Str("full_name"),
		Phone:      r.Str("phone"),
		Email:      r.OptString("email"),
		City:       r.OptString("city"),
		Points:     r.Int("points"),
		CreatedAt:  r.Str("created_at"),
	}
}

func devUsersFrom(r normalize.Record) DevUsers {
	records := r.List("users")
	users := make([]DevUser, 0, len(records))
	for _, u := range records {
		users = append(users, DevUser{
			ID:         u.Int("id"),
			TelegramID: u.Str("telegram_id"),
			FullName:   u.Str("full_name"),
			Username:   u.OptString("username"),
			Phone:      u.Str("phone"),
		})
	}
	return DevUsers{Users: users, Total: r.Int("total")}
}
