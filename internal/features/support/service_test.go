package support

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/platform/apiclient/apitest"
)

func TestMyTicket(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/support/ticket", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id":         4,
				"subject":    nil,
				"status":     "",
				"created_at": "2024-01-01T00:00:00",
				"updated_at": "2024-01-01T01:00:00",
				"messages": []gin.H{
					{"id": 1, "ticket_id": 4, "message": "Hello", "is_from_admin": false, "created_at": "2024-01-01T00:00:00"},
					{"id": 2, "ticket_id": 4, "message": "Hi!", "is_from_admin": true},
				},
			})
		})
	})

	got, err := NewService(srv.Client).MyTicket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open", got.Status)
	assert.False(t, got.Subject.IsSet())
	require.Len(t, got.Messages, 2)
	assert.True(t, got.Messages[1].IsFromAdmin)
	assert.NotEmpty(t, got.Messages[1].CreatedAt)
}

func TestCreateTicketAndSend(t *testing.T) {
	var bodies []map[string]any
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.POST("/support/ticket", func(c *gin.Context) {
			var in map[string]any
			_ = c.ShouldBindJSON(&in)
			bodies = append(bodies, in)
			c.JSON(http.StatusOK, gin.H{"id": 5, "subject": in["subject"], "status": "open", "messages": []any{}})
		})
		api.POST("/support/ticket/message", func(c *gin.Context) {
			var in map[string]any
			_ = c.ShouldBindJSON(&in)
			bodies = append(bodies, in)
			c.JSON(http.StatusOK, gin.H{"id": 9, "ticket_id": 5, "message": in["message"]})
		})
	})
	svc := NewService(srv.Client)

	subject := "Payment"
	ticket, err := svc.CreateTicket(context.Background(), CreateTicketRequest{Subject: &subject, Message: "Card declined"})
	require.NoError(t, err)
	assert.Equal(t, "Payment", ticket.Subject.OrElse(""))

	msg, err := svc.SendMessage(context.Background(), "Any news?")
	require.NoError(t, err)
	assert.Equal(t, "Any news?", msg.Message)

	assert.Equal(t, []map[string]any{
		{"subject": "Payment", "message": "Card declined"},
		{"message": "Any news?"},
	}, bodies)
}

func TestSendMessageRejectsBlank(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {})

	_, err := NewService(srv.Client).SendMessage(context.Background(), "   ")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsValidation())
	assert.Equal(t, "message", appErr.Details["field"])
}
