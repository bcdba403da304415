package main

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-miniapp/internal/common/config"
	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/platform/apiclient/apitest"
)

func testConfig(t *testing.T, srv *apitest.Server) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.URL = srv.URL + "/api"
	cfg.API.Timeout = 5 * time.Second
	cfg.App.Origin = "http://localhost:5173"
	cfg.Telegram.DevDefaultID = 555
	cfg.Store.Driver = config.StoreMemory
	require.NoError(t, cfg.Validate())
	return cfg
}

func backend(t *testing.T) *apitest.Server {
	return apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/courses", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{{"id": 1, "title": "Nails", "price": 990, "owner": apitest.TelegramID(c)}})
		})
		api.GET("/courses/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": 1, "title": "Nails", "lessons": []gin.H{
				{"id": 11, "title": "Intro", "order": 1},
				{"id": 12, "title": "Tools", "order": 2},
			}})
		})
		api.GET("/profile", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"telegram_id": apitest.TelegramID(c), "full_name": "Dev"})
		})
		api.GET("/access/check", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"has_access": true, "purchased_courses_count": 1})
		})
		api.GET("/progress", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "boom"})
		})
	})
}

func runJSON(t *testing.T, cfg *config.Config, args ...string) map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, args, &out))
	var v map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	return v
}

func TestRunCoursesList(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), testConfig(t, srv), []string{"courses", "list"}, &out))

	var list []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Nails", list[0]["title"])
}

func TestRunNextLesson(t *testing.T) {
	cfg := testConfig(t, backend(t))

	got := runJSON(t, cfg, "lessons", "next", "-course", "1", "-lesson", "11")
	next := got["next"].(map[string]any)
	assert.Equal(t, float64(12), next["id"])

	got = runJSON(t, cfg, "lessons", "next", "-course", "1", "-lesson", "12")
	assert.Nil(t, got["next"])
}

func TestRunDashboardReportsFailedPanel(t *testing.T) {
	got := runJSON(t, testConfig(t, backend(t)), "dashboard")

	assert.Equal(t, "Dev", got["profile"].(map[string]any)["full_name"])
	assert.Equal(t, true, got["access"].(map[string]any)["has_access"])
	assert.Len(t, got["courses"], 1)
	assert.Nil(t, got["progress"])
	assert.Equal(t, map[string]any{"progress": "[SERVER_ERROR] boom (status 500)"}, got["errors"])
}

func TestRunDevIDPersistsInBadger(t *testing.T) {
	cfg := testConfig(t, backend(t))
	cfg.Store.Driver = config.StoreBadger
	cfg.Badger.Dir = filepath.Join(t.TempDir(), "state")

	assert.Equal(t, float64(555), runJSON(t, cfg, "dev-id", "get")["telegram_id"])
	runJSON(t, cfg, "dev-id", "set", "-id", "777")
	assert.Equal(t, float64(777), runJSON(t, cfg, "dev-id", "get")["telegram_id"])

	got := runJSON(t, cfg, "profile", "get")
	assert.Equal(t, float64(777), got["telegram_id"])
}

func TestRunValidationFailsBeforeSending(t *testing.T) {
	cfg := testConfig(t, backend(t))

	err := run(context.Background(), cfg, []string{"reviews", "create", "-course", "1", "-rating", "9"}, &bytes.Buffer{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsValidation())
	assert.Equal(t, 1, exitCode(err))
}

func TestRunUsageErrors(t *testing.T) {
	cfg := testConfig(t, backend(t))

	for _, args := range [][]string{
		nil,
		{"nope"},
		{"courses"},
		{"courses", "delete"},
		{"courses", "get", "-bogus"},
		{"profile", "update"},
	} {
		err := run(context.Background(), cfg, args, &bytes.Buffer{})
		var usage *usageError
		assert.True(t, errors.As(err, &usage), "%v", args)
	}
}

func TestDownloadCertificateWritesFile(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/certificates/:id/download", func(c *gin.Context) {
			c.Header("Content-Disposition", `attachment; filename="../cert.pdf"`)
			c.Data(http.StatusOK, "application/pdf", []byte("%PDF"))
		})
	})
	dir := t.TempDir()

	got := runJSON(t, testConfig(t, srv), "certificates", "download", "-id", "3", "-dir", dir)
	assert.Equal(t, filepath.Join(dir, "cert.pdf"), got["file"])

	data, err := os.ReadFile(filepath.Join(dir, "cert.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
}

func TestDownloadCertificateIntoMissingDir(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/certificates/:id/download", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/pdf", []byte("%PDF"))
		})
	})
	dir := filepath.Join(t.TempDir(), "missing")

	err := run(context.Background(), testConfig(t, srv), []string{"certificates", "download", "-id", "3", "-dir", dir}, &bytes.Buffer{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
	assert.Contains(t, appErr.Message, filepath.Join(dir, "certificate_3.pdf"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunFavoritesToggleWithEmptyReply(t *testing.T) {
	srv := apitest.New(t, func(api *gin.RouterGroup) {
		api.GET("/favorites/check/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"is_favorite": false})
		})
		api.POST("/favorites/:id", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	got := runJSON(t, testConfig(t, srv), "favorites", "toggle", "-id", "5")
	assert.Equal(t, true, got["is_favorite"])
}
