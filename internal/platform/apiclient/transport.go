package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"course-miniapp/internal/identity"
)

const HeaderRequestID = "X-Request-ID"

// CredentialResolver yields the identity header for one call.
type CredentialResolver interface {
	Resolve(ctx context.Context, launch identity.LaunchContext, host identity.HostContext) identity.Credential
}

// identityTransport attaches the resolved identity header to every request.
// At most one identity header leaves the process.
type identityTransport struct {
	base     http.RoundTripper
	resolver CredentialResolver
	launch   identity.LaunchContext
	host     identity.HostContext
	log      zerolog.Logger
}

func (t *identityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Del(identity.HeaderInitData)
	out.Header.Del(identity.HeaderUserID)

	if t.resolver != nil {
		cred := t.resolver.Resolve(req.Context(), t.launch, t.host)
		if !cred.IsZero() {
			out.Header.Set(cred.Header, cred.Value)
			t.log.Debug().
				Str("header", cred.Header).
				Int64("telegram_id", cred.Subject).
				Str("path", out.URL.Path).
				Msg("Identity attached")
		}
	}
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}
