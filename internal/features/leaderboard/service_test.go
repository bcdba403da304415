package leaderboard

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

func TestTopSendsLimit(t *testing.T) {
	var limits []string
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		handler := func(c *gin.Context) {
			limits = append(limits, c.Query("limit"))
			c.JSON(http.StatusOK, []gin.H{
				{"position": 1, "user_id": 3, "full_name": "Anna", "points": 900, "completed_courses": 2, "completed_lessons": 20},
				{"position": -1, "full_name": ""},
			})
		}
		api.GET("/leaderboard", handler)
		api.GET("/leaderboard/courses", handler)
	})
	svc := NewService(srv.Client)

	got, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Anna", got[0].FullName)
	assert.Equal(t, Entry{FullName: "User"}, got[1])

	_, err = svc.TopByCourses(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", ""}, limits)
}

func TestTopRejectsLimit(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {})

	_, err := NewService(srv.Client).Top(context.Background(), 101)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsValidation())
}

func TestMyPosition(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/leaderboard/my-position", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"position": 4, "points": 300, "completed_courses": 1, "completed_lessons": 8, "total_users": "many"})
		})
	})

	got, err := NewService(srv.Client).MyPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MyPosition{Position: 4, Points: 300, CompletedCourses: 1, CompletedLessons: 8}, *got)
}
