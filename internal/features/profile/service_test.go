package profile

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/normalize"
	"course-miniapp/internal/platform/apiclient/apitest"
)

func strPtr(s string) *string { return &s }

func TestGetAppliesDefaults(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/profile", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id":          5,
				"telegram_id": apitest.TelegramID(c),
				"full_name":   "",
				"phone":       nil,
				"city":        "Moscow",
				"points":      120,
				"created_at":  nil,
			})
		})
	})

	got, err := NewService(srv.Client).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, apitest.DevID, got.TelegramID)
	assert.Equal(t, "User", got.FullName)
	assert.Equal(t, "not specified", got.Phone)
	assert.Equal(t, normalize.Some("Moscow"), got.City)
	assert.False(t, got.Username.IsSet())
	assert.Equal(t, int64(120), got.Points)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]any
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.PUT("/profile", func(c *gin.Context) {
			_ = c.ShouldBindJSON(&body)
			c.JSON(http.StatusOK, gin.H{"id": 5, "full_name": body["full_name"], "phone": "+7 900"})
		})
	})

	got, err := NewService(srv.Client).Update(context.Background(), UpdateRequest{FullName: strPtr("Maria Ivanova")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"full_name": "Maria Ivanova"}, body)
	assert.Equal(t, "Maria Ivanova", got.FullName)
}

func TestUpdateValidatesBeforeSending(t *testing.T) {
	calls := 0
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.PUT("/profile", func(c *gin.Context) {
			calls++
			c.Status(http.StatusOK)
		})
	})
	svc := NewService(srv.Client)

	tests := []struct {
		name  string
		req   UpdateRequest
		field string
	}{
		{"bad email", UpdateRequest{Email: strPtr("not-an-email")}, "email"},
		{"blank name", UpdateRequest{FullName: strPtr("   ")}, "full_name"},
		{"long city", UpdateRequest{City: strPtr(string(make([]byte, 129)))}, "city"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tc.req)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.True(t, appErr.IsValidation())
			assert.Equal(t, tc.field, appErr.Details["field"])
		})
	}
	assert.Zero(t, calls)
}

func TestDevUsersCoercesTelegramID(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/profile/dev/users", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`{"users":[
				{"id":1,"telegram_id":"310836227","full_name":"Admin","phone":"+7"},
				{"id":2,"telegram_id":555000111,"full_name":null}
			],"total":2}`))
		})
	})

	got, err := NewService(srv.Client).DevUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Users, 2)
	assert.Equal(t, "310836227", got.Users[0].TelegramID)
	assert.Equal(t, "555000111", got.Users[1].TelegramID)
	assert.Equal(t, "User", got.Users[1].FullName)
	assert.Equal(t, "not specified", got.Users[1].Phone)
	assert.Equal(t, int64(2), got.Total)
}
