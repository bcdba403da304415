package payments

import (
	"context"
	"fmt"
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

// Create starts a payment for a course. The gateway flow itself happens
// at the returned URL.
func (s *Service) Create(ctx context.Context, courseID int64) (*Payment, error) {
	req := createRequest{CourseID: courseID}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/payment/create", Body: req})
	if err != nil {
		return nil, err
	}
	p := paymentFrom(PaymentShape.Normalize(raw))
	return &p, nil
}

func (s *Service) Status(ctx context.Context, paymentID int64) (*Status, error) {
	if err := validation.ValidatePositiveID(paymentID, "payment_id"); err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: fmt.Sprintf("/payment/status/%d", paymentID)})
	if err != nil {
		return nil, err
	}
	st := statusFrom(StatusShape.Normalize(raw))
	return &st, nil
}

func (s *Service) History(ctx context.Context) ([]HistoryItem, error) {
	raw, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/payment/history"})
	if err != nil {
		return nil, err
	}
	records := HistoryItemShape.ListOf(raw)
	out := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		out = append(out, historyItemFrom(r))
	}
	return out, nil
}
