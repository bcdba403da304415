package support

import "course-miniapp/internal/normalize"

var (
	MessageShape = normalize.NewShape("SupportMessage",
		normalize.Int("id", 0),
		normalize.Int("ticket_id", 0),
		normalize.String("message", ""),
		normalize.Bool("is_from_admin", false),
		normalize.Timestamp("created_at"),
	)

	TicketShape = normalize.NewShape("SupportTicket",
		normalize.Int("id", 0),
		normalize.OptionalString("subject"),
		normalize.String("status", "open").NonEmpty(),
		normalize.Timestamp("created_at"),
		normalize.Timestamp("updated_at"),
		normalize.List("messages", MessageShape),
	)
)

type Message struct {
	ID          int64  `json:"id"`
	TicketID    int64  `json:"ticket_id"`
	Message     string `json:"message"`
	IsFromAdmin bool   `json:"is_from_admin"`
	CreatedAt   string `json:"created_at"`
}

// Ticket is the caller's single support conversation.
type Ticket struct {
	ID        int64                    `json:"id"`
	Subject   normalize.Option[string] `json:"subject"`
	Status    string                   `json:"status"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt string                   `json:"updated_at"`
	Messages  []Message                `json:"messages"`
}

type CreateTicketRequest struct {
	Subject *string `json:"subject,omitempty" validate:"omitempty,max=255"`
	Message string  `json:"message" validate:"required,notblank,max=4000"`
}

type sendMessageRequest struct {
	Message string `json:"message" validate:"required,notblank,max=4000"`
}

func messageFrom(r normalize.Record) Message {
	return Message{
		ID:          r.Int("id"),
		TicketID:    r.Int("ticket_id"),
		Message:     r.Str("message"),
		IsFromAdmin: r.Bool("is_from_admin"),
		CreatedAt:   r.Str("created_at"),
	}
}

func ticketFrom(r normalize.Record) Ticket {
	records := r.List("messages")
	msgs := make([]Message, 0, len(records))
	for _, m := range records {
		msgs = append(msgs, messageFrom(m))
	}
	return Ticket{
		ID:        r.Int("id"),
		Subject:   r.OptString("subject"),
		Status:    r.Str("status"),
		CreatedAt: r.Str("created_at"),
		UpdatedAt: r.Str("updated_at"),
		Messages:  msgs,
	}
}
