package courses

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

func TestListNormalizesInvalidFields(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`[
				{"id":"7","title":null,"price":-5},
				{"id":2,"title":"Gel polish","category":"manicure","is_top":true,"price":1490.5,"duration_hours":12,"cover_image_url":"https://cdn/x.png"}
			]`))
		})
	})

	got, err := NewService(srv.Client).List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Course{ID: 0, Title: "Untitled", Price: 0}, got[0])
	assert.Equal(t, Course{
		ID:            2,
		Title:         "Gel polish",
		Category:      "manicure",
		CoverImageURL: normalize.Some("https://cdn/x.png"),
		IsTop:         true,
		Price:         1490.5,
		DurationHours: normalize.Some(12.0),
	}, got[1])
}

func TestListSendsFilter(t *testing.T) {
	var query map[string][]string
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses", func(c *gin.Context) {
			query = c.Request.URL.Query()
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	top := true
	got, err := NewService(srv.Client).List(context.Background(), Filter{Category: "eyelashes", IsTop: &top, Search: "lift"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, map[string][]string{"category": {"eyelashes"}, "is_top": {"true"}, "search": {"lift"}}, query)
}

func TestListNonArrayIsEmpty(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"detail": "unexpected"})
		})
	})

	got, err := NewService(srv.Client).List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []Course{}, got)
}

func TestGetLessonsNotAnArray(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 3, "title": "Brows", "lessons": "not-an-array"})
		})
	})

	got, err := NewService(srv.Client).Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.Lessons)
	assert.Empty(t, got.Lessons)
	assert.False(t, got.FullDescription.IsSet())
}

func TestGetNotFound(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses/:id", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		})
	})

	_, err := NewService(srv.Client).Get(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetRejectsInvalidID(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {})

	_, err := NewService(srv.Client).Get(context.Background(), 0)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsValidation())
}

func TestMyClampsProgress(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses/my/courses", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": 1, "title": "A", "progress": gin.H{"total_lessons": 10, "completed_lessons": 14, "progress_percent": 142, "purchased_at": "2024-02-01T10:00:00"}},
				{"id": 2, "title": "B", "progress": nil},
			})
		})
	})

	got, err := NewService(srv.Client).My(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 100.0, got[0].Progress.ProgressPercent)
	assert.Equal(t, normalize.Some("2024-02-01T10:00:00"), got[0].Progress.PurchasedAt)
	assert.Equal(t, ProgressSummary{}, got[1].Progress)
}
