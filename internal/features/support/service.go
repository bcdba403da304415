package support

import (
	"context"
	"net/http"

	"course-miniapp/internal/common/validation"
	"course-miniapp/internal/platform/apiclient"
)

type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// MyTicket returns the open ticket with its messages.
func (s *Service) MyTicket(ctx context.Context) (*Ticket, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/support/ticket"})
	if err != nil {
		return nil, err
	}
	t := ticketFrom(TicketShape.Normalize(raw))
	return &t, nil
}

func (s *Service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/support/ticket", Body: req})
	if err != nil {
		return nil, err
	}
	t := ticketFrom(TicketShape.Normalize(raw))
	return &t, nil
}

// SendMessage appends a message to the caller's ticket.
func (s *Service) SendMessage(ctx context.Context, message string) (*Message, error) {
	req := sendMessageRequest{Message: message}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/support/ticket/message", Body: req})
	if err != nil {
		return nil, err
	}
	m := messageFrom(MessageShape.Normalize(raw))
	return &m, nil
}
