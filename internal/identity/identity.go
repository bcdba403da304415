// Package identity decides which identity header accompanies every API call.
package identity

import (
	"context"
	"strings"
)

const (
	// HeaderInitData carries the signed Telegram launch payload verbatim.
	HeaderInitData = "X-Telegram-Init-Data"
	// HeaderUserID carries the development Telegram id as a decimal string.
	HeaderUserID = "X-Telegram-User-ID"

	// DevIDKey is the persisted slot holding the development identifier.
	DevIDKey = "dev_telegram_id"

	// DefaultDevID is used when no development identifier was chosen yet.
	DefaultDevID int64 = 310836227
)

// LaunchContext is what the host messenger handed over at launch.
type LaunchContext struct {
	InitData string
}

// Signed reports whether a non-blank signed payload is present.
func (l LaunchContext) Signed() bool {
	return strings.TrimSpace(l.InitData) != ""
}

// HostContext describes where the app is running.
type HostContext struct {
	Hostname string
	// DevFlag mirrors ?dev=true in the app URL.
	DevFlag bool
}

// IsDevHost reports whether the development identity may be used.
func (h HostContext) IsDevHost() bool {
	if h.DevFlag {
		return true
	}
	host := strings.ToLower(strings.TrimSpace(h.Hostname))
	return host == "" || host == "localhost" || host == "127.0.0.1" || strings.Contains(host, "localhost")
}

// Credential is the identity header to attach. The zero value means none.
type Credential struct {
	Header string
	Value  string
	// Subject is the Telegram user id for logging, when known.
	Subject int64
}

func (c Credential) IsZero() bool {
	return c.Header == ""
}

// Store persists the development identifier slot.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

type launchKey struct{}

// WithLaunch overrides the launch context for calls made with ctx.
func WithLaunch(ctx context.Context, launch LaunchContext) context.Context {
	return context.WithValue(ctx, launchKey{}, launch)
}

// LaunchFrom returns the launch context stored by WithLaunch.
func LaunchFrom(ctx context.Context) (LaunchContext, bool) {
	l, ok := ctx.Value(launchKey{}).(LaunchContext)
	return l, ok
}
