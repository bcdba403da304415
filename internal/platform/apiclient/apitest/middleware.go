package apitest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"course-miniapp/internal/identity"
)

// Context keys set by IdentityMiddleware.
const (
	TelegramIDKey = "telegram_id"
	IdentityKey   = "identity_header"
)

// IdentityMiddleware reads the identity headers the way the backend does:
// a signed payload first, then the development id. Signatures are not
// checked; requests without identity get 401.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := c.GetHeader(identity.HeaderInitData)
		devID := c.GetHeader(identity.HeaderUserID)

		if initData != "" && devID != "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Conflicting identity headers"})
			return
		}

		switch {
		case initData != "":
			parsed, err := initdata.Parse(initData)
			if err != nil || parsed.User.ID == 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Failed to parse init data"})
				return
			}
			c.Set(TelegramIDKey, parsed.User.ID)
			c.Set(IdentityKey, identity.HeaderInitData)
		case devID != "":
			id, err := strconv.ParseInt(devID, 10, 64)
			if err != nil || id <= 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid development user id"})
				return
			}
			c.Set(TelegramIDKey, id)
			c.Set(IdentityKey, identity.HeaderUserID)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		c.Next()
	}
}

// TelegramID returns the caller id stored by IdentityMiddleware.
func TelegramID(c *gin.Context) int64 {
	return c.GetInt64(TelegramIDKey)
}
