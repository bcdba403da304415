package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeForStatus(t *testing.T) {
	tests := map[int]ErrorCode{
		http.StatusBadRequest:          ErrCodeBadRequest,
		http.StatusUnauthorized:        ErrCodeUnauthorized,
		http.StatusForbidden:           ErrCodeForbidden,
		http.StatusNotFound:            ErrCodeNotFound,
		http.StatusConflict:            ErrCodeConflict,
		http.StatusUnprocessableEntity: ErrCodeValidation,
		http.StatusTooManyRequests:     ErrCodeTooManyRequests,
		http.StatusInternalServerError: ErrCodeServer,
		http.StatusBadGateway:          ErrCodeServer,
		http.StatusTeapot:              ErrCodeBadRequest,
	}
	for status, want := range tests {
		assert.Equal(t, want, CodeForStatus(status), status)
	}
}

func TestNewHTTPErrorDefaultsMessage(t *testing.T) {
	err := NewHTTPError(http.StatusNotFound, "", nil, []byte("nope"))
	assert.Equal(t, "Not Found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, err.IsNotFound())
	assert.Equal(t, "[NOT_FOUND] Not Found (status 404)", err.Error())
}

func TestWrappedAppErrorIsFound(t *testing.T) {
	base := NewTransportError(context.DeadlineExceeded).WithRequest(http.MethodGet, "/courses")
	wrapped := fmt.Errorf("load courses: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Same(t, base, appErr)
	assert.True(t, IsTransport(wrapped))
	assert.True(t, stderrors.Is(wrapped, context.DeadlineExceeded))
	assert.Zero(t, StatusCode(wrapped))
	assert.Contains(t, base.Error(), "deadline exceeded")
}

func TestAsAppErrorOnPlainErrors(t *testing.T) {
	_, ok := AsAppError(nil)
	assert.False(t, ok)
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}

func TestValidationAndStorageDetails(t *testing.T) {
	v := NewValidationError("rating", "must be at most 5")
	assert.True(t, v.IsValidation())
	assert.Equal(t, "rating", v.Details["field"])
	assert.Equal(t, "must be at most 5", v.Details["reason"])

	s := NewStorageError("get dev_telegram_id", stderrors.New("closed"))
	assert.Equal(t, ErrCodeStorage, s.Code)
	assert.Equal(t, "get dev_telegram_id", s.Details["operation"])
	assert.NotEmpty(t, s.Stack)
}

func TestUnauthorizedCoversForbidden(t *testing.T) {
	assert.True(t, NewHTTPError(http.StatusForbidden, "", nil, nil).IsUnauthorized())
	assert.True(t, NewHTTPError(http.StatusUnauthorized, "", nil, nil).IsUnauthorized())
	assert.True(t, NewHTTPError(http.StatusServiceUnavailable, "", nil, nil).IsServer())
}
