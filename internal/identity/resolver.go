package identity

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/common/validation"
)

// Resolver picks the identity header for a call. Safe for concurrent use.
type Resolver struct {
	store     Store
	defaultID int64
	log       zerolog.Logger

	// serialises the read/fallback/write sequence on the dev slot
	mu sync.Mutex
}

// NewResolver creates a resolver; defaultID <= 0 selects DefaultDevID.
func NewResolver(store Store, defaultID int64, log zerolog.Logger) *Resolver {
	if defaultID <= 0 {
		defaultID = DefaultDevID
	}
	return &Resolver{
		store:     store,
		defaultID: defaultID,
		log:       log,
	}
}

// Resolve never fails. A signed payload wins on every host; otherwise a
// development host gets the stored development id; otherwise no credential.
func (r *Resolver) Resolve(ctx context.Context, launch LaunchContext, host HostContext) Credential {
	if override, ok := LaunchFrom(ctx); ok && override.Signed() {
		launch = override
	}

	if launch.Signed() {
		cred := Credential{Header: HeaderInitData, Value: launch.InitData}
		// Parsed for diagnostics only; the payload is forwarded untouched.
		if parsed, err := initdata.Parse(launch.InitData); err == nil {
			cred.Subject = parsed.User.ID
		} else {
			r.log.Debug().Err(err).Msg("Signed payload is not parseable, forwarding as is")
		}
		return cred
	}

	if !host.IsDevHost() {
		return Credential{}
	}

	id, err := r.DevIdentifier(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("Development identifier unavailable, sending without identity")
		return Credential{}
	}
	return Credential{Header: HeaderUserID, Value: strconv.FormatInt(id, 10), Subject: id}
}

// DevIdentifier returns the persisted development id. A missing or invalid
// value is replaced by the default and written back; a failed write still
// yields the default. Only a read failure is returned as an error.
func (r *Resolver) DevIdentifier(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, found, err := r.store.Get(ctx, DevIDKey)
	if err != nil {
		return 0, apperrors.NewStorageError("get "+DevIDKey, err)
	}
	if found {
		if id, ok := parseID(raw); ok {
			return id, nil
		}
		r.log.Warn().Str("value", raw).Msg("Stored development identifier is invalid, resetting to default")
	}

	if err := r.store.Set(ctx, DevIDKey, strconv.FormatInt(r.defaultID, 10)); err != nil {
		r.log.Warn().Err(err).Msg("Failed to persist default development identifier")
	} else {
		r.log.Debug().Int64("telegram_id", r.defaultID).Msg("Default development identifier persisted")
	}
	return r.defaultID, nil
}

// SetDevIdentifier switches the development identity.
func (r *Resolver) SetDevIdentifier(ctx context.Context, id int64) error {
	if err := validation.ValidatePositiveID(id, "telegram_id"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, DevIDKey, strconv.FormatInt(id, 10)); err != nil {
		return apperrors.NewStorageError("set "+DevIDKey, err)
	}
	r.log.Info().Int64("telegram_id", id).Msg("Development identifier switched")
	return nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
