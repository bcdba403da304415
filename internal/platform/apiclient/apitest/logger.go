package apitest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"course-miniapp/internal/platform/apiclient"
)

// RequestLogger logs every request the fake backend serves, with the
// identity it was attributed to.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int64("telegram_id", TelegramID(c)).
			Str("identity", c.GetString(IdentityKey)).
			Str("request_id", c.GetHeader(apiclient.HeaderRequestID)).
			Msg("Request processed")
	}
}
