package reviews

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/platform/apiclient/apitest"
)

func TestByCourse(t *testing.T) {
	var query string
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/reviews/course/:id", func(c *gin.Context) {
			query = c.Request.URL.RawQuery
			c.JSON(http.StatusOK, []gin.H{
				{"id": 1, "user_id": 2, "course_id": 3, "user_name": "Olga", "rating": 5, "comment": "Great", "created_at": "2024-01-01T00:00:00", "updated_at": nil},
				{"id": 2, "rating": 9, "user_name": nil, "comment": ""},
			})
		})
	})

	got, err := NewService(srv.Client).ByCourse(context.Background(), 3, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, "limit=20&offset=40", query)
	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].Rating)
	assert.Equal(t, "Great", got[0].Comment.OrElse(""))
	assert.False(t, got[0].UpdatedAt.IsSet())
	assert.Equal(t, int64(0), got[1].Rating)
	assert.Equal(t, "User", got[1].UserName)
	assert.False(t, got[1].Comment.IsSet())
}

func TestByCourseReportsNegativeField(t *testing.T) {
	svc := NewService(apitest.New(t, func(*gin.RouterGroup) {}).Client)

	for field, args := range map[string][2]int{"limit": {-1, 0}, "offset": {10, -5}} {
		_, err := svc.ByCourse(context.Background(), 3, args[0], args[1])
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok, field)
		assert.True(t, appErr.IsValidation(), field)
		assert.Equal(t, field, appErr.Details["field"], field)
	}
}

func TestRating(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/reviews/course/:id/rating", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`{"course_id":3,"average_rating":7.5,"total_reviews":4,"rating_distribution":{"5":3,"4":1,"1":"x"}}`))
		})
	})

	got, err := NewService(srv.Client).Rating(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.AverageRating)
	assert.Equal(t, map[string]int64{"5": 3, "4": 1}, got.Distribution)
}

func TestCreateValidates(t *testing.T) {
	calls := 0
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.POST("/reviews/course/:id", func(c *gin.Context) {
			calls++
			var in map[string]any
			_ = c.ShouldBindJSON(&in)
			c.JSON(http.StatusOK, gin.H{"id": 10, "course_id": 3, "user_name": "Me", "rating": in["rating"], "comment": in["comment"]})
		})
	})
	svc := NewService(srv.Client)
	long := strings.Repeat("a", 2001)

	for _, req := range []CreateRequest{{Rating: 0}, {Rating: 6}, {Rating: 4, Comment: &long}} {
		_, err := svc.Create(context.Background(), 3, req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsValidation())
	}
	assert.Zero(t, calls)

	comment := "Loved it"
	got, err := svc.Create(context.Background(), 3, CreateRequest{Rating: 4, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(4), got.Rating)
	assert.Equal(t, "Loved it", got.Comment.OrElse(""))
}

func TestDeleteAndMy(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.DELETE("/reviews/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
		})
		api.GET("/reviews/my", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []any{}})
		})
	})
	svc := NewService(srv.Client)

	msg, err := svc.Delete(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Review deleted successfully", msg)

	my, err := svc.My(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Review{}, my)
}
