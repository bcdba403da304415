package payments

import "course-miniapp/internal/normalize"

const StatusPending = "pending"

var (
	PaymentShape = normalize.NewShape("Payment",
		normalize.Int("payment_id", 0),
		normalize.String("payment_url", ""),
		normalize.Number("amount", 0).NonNegative(),
		normalize.String("status", StatusPending).NonEmpty(),
	)

	StatusShape = normalize.NewShape("PaymentStatus",
		normalize.Int("payment_id", 0),
		normalize.String("status", StatusPending).NonEmpty(),
		normalize.Number("amount", 0).NonNegative(),
		normalize.Int("course_id", 0),
	)

	HistoryItemShape = normalize.NewShape("PaymentHistoryItem",
		normalize.Int("id", 0),
		normalize.Int("course_id", 0),
		normalize.String("course_title", ""),
		normalize.Number("amount", 0).NonNegative(),
		normalize.String("status", StatusPending).NonEmpty(),
		normalize.Timestamp("created_at"),
		normalize.OptionalTimestamp("paid_at"),
	)
)

// Payment is a created payment; the user completes it at PaymentURL.
type Payment struct {
	PaymentID  int64   `json:"payment_id"`
	PaymentURL string  `json:"payment_url"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

type Status struct {
	PaymentID int64   `json:"payment_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	CourseID  int64   `json:"course_id"`
}

type HistoryItem struct {
	ID          int64                    `json:"id"`
	CourseID    int64                    `json:"course_id"`
	CourseTitle string                   `json:"course_title"`
	Amount      float64                  `json:"amount"`
	Status      string                   `json:"status"`
	CreatedAt   string                   `json:"created_at"`
	PaidAt      normalize.Option[string] `json:"paid_at"`
}

type createRequest struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0"`
}

func paymentFrom(r normalize.Record) Payment {
	return Payment{
		PaymentID:  r.Int("payment_id"),
		PaymentURL: r.Str("payment_url"),
		Amount:     r.Float("amount"),
		Status:     r.Str("status"),
	}
}

func statusFrom(r normalize.Record) Status {
	return Status{
		PaymentID: r.Int("payment_id"),
		Status:    r.Str("status"),
		Amount:    r.Float("amount"),
		CourseID:  r.Int("course_id"),
	}
}

func historyItemFrom(r normalize.Record) HistoryItem {
	return HistoryItem{
		ID:          r.Int("id"),
		CourseID:    r.Int("course_id"),
		CourseTitle: r.Str("course_title"),
		Amount:      r.Float("amount"),
		Status:      r.Str("status"),
		CreatedAt:   r.Str("created_at"),
		PaidAt:      r.OptString("paid_at"),
	}
}
