package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/storage/memory"
)

type faultyStore struct {
	*memory.Store
	getErr error
	setErr error
	sets   int
}

func (s *faultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Store.Get(ctx, key)
}

func (s *faultyStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	return s.Store.Set(ctx, key, value)
}

func signedPayload(userID int64) string {
	v := url.Values{}
	v.Set("user", fmt.Sprintf(`{"id":%d,"first_name":"Ann"}`, userID))
	v.Set("auth_date", "1700000000")
	v.Set("hash", "c0ffee")
	return v.Encode()
}

func TestIsDevHost(t *testing.T) {
	tests := []struct {
		host HostContext
		want bool
	}{
		{HostContext{Hostname: "localhost"}, true},
		{HostContext{Hostname: "127.0.0.1"}, true},
		{HostContext{Hostname: "app.localhost"}, true},
		{HostContext{Hostname: ""}, true},
		{HostContext{Hostname: "LOCALHOST"}, true},
		{HostContext{Hostname: "courses.example.com"}, false},
		{HostContext{Hostname: "courses.example.com", DevFlag: true}, true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.host.IsDevHost(), "%+v", tc.host)
	}
}

func TestResolveDevHostPersistsDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	r := NewResolver(store, 0, zerolog.Nop())
	host := HostContext{Hostname: "localhost"}

	first := r.Resolve(ctx, LaunchContext{}, host)
	assert.Equal(t, Credential{Header: HeaderUserID, Value: "310836227", Subject: DefaultDevID}, first)

	stored, found, err := store.Get(ctx, DevIDKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "310836227", stored)

	second := r.Resolve(ctx, LaunchContext{}, host)
	assert.Equal(t, first, second)
}

func TestResolveUsesStoredIdentifier(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, DevIDKey, "555"))
	r := NewResolver(store, 0, zerolog.Nop())

	cred := r.Resolve(ctx, LaunchContext{}, HostContext{Hostname: "127.0.0.1"})
	assert.Equal(t, HeaderUserID, cred.Header)
	assert.Equal(t, "555", cred.Value)
}

func TestResolveReplacesInvalidStoredValue(t *testing.T) {
	for _, raw := range []string{"abc", "-3", "0", ""} {
		ctx := context.Background()
		store := memory.New()
		require.NoError(t, store.Set(ctx, DevIDKey, raw))
		r := NewResolver(store, 777, zerolog.Nop())

		cred := r.Resolve(ctx, LaunchContext{}, HostContext{})
		assert.Equal(t, "777", cred.Value, raw)

		stored, _, err := store.Get(ctx, DevIDKey)
		require.NoError(t, err)
		assert.Equal(t, "777", stored, raw)
	}
}

func TestSignedPayloadWinsOnEveryHost(t *testing.T) {
	ctx := context.Background()
	payload := signedPayload(4242)
	hosts := []HostContext{
		{Hostname: "localhost"},
		{Hostname: "courses.example.com"},
		{Hostname: "courses.example.com", DevFlag: true},
	}

	for _, host := range hosts {
		store := &faultyStore{Store: memory.New()}
		r := NewResolver(store, 0, zerolog.Nop())

		cred := r.Resolve(ctx, LaunchContext{InitData: payload}, host)
		assert.Equal(t, HeaderInitData, cred.Header)
		assert.Equal(t, payload, cred.Value)
		assert.Equal(t, int64(4242), cred.Subject)
		assert.Zero(t, store.sets, "dev slot must not be touched")
	}
}

func TestUnparseableSignedPayloadForwardedVerbatim(t *testing.T) {
	r := NewResolver(memory.New(), 0, zerolog.Nop())

	cred := r.Resolve(context.Background(), LaunchContext{InitData: "%%%garbage"}, HostContext{Hostname: "example.com"})
	assert.Equal(t, HeaderInitData, cred.Header)
	assert.Equal(t, "%%%garbage", cred.Value)
	assert.Zero(t, cred.Subject)
}

func TestBlankPayloadIsIgnored(t *testing.T) {
	r := NewResolver(memory.New(), 0, zerolog.Nop())

	assert.True(t, r.Resolve(context.Background(), LaunchContext{InitData: "  \n"}, HostContext{Hostname: "example.com"}).IsZero())
	assert.Equal(t, HeaderUserID, r.Resolve(context.Background(), LaunchContext{InitData: " "}, HostContext{}).Header)
}

func TestProductionHostWithoutPayloadHasNoCredential(t *testing.T) {
	store := &faultyStore{Store: memory.New()}
	r := NewResolver(store, 0, zerolog.Nop())

	cred := r.Resolve(context.Background(), LaunchContext{}, HostContext{Hostname: "courses.example.com"})
	assert.True(t, cred.IsZero())
	assert.Zero(t, store.sets)
}

func TestLaunchOverrideFromContext(t *testing.T) {
	r := NewResolver(memory.New(), 0, zerolog.Nop())
	payload := signedPayload(99)
	ctx := WithLaunch(context.Background(), LaunchContext{InitData: payload})

	cred := r.Resolve(ctx, LaunchContext{InitData: signedPayload(1)}, HostContext{Hostname: "example.com"})
	assert.Equal(t, payload, cred.Value)
	assert.Equal(t, int64(99), cred.Subject)

	got, ok := LaunchFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, payload, got.InitData)
}

func TestStoreReadFailureDegradesToNoCredential(t *testing.T) {
	store := &faultyStore{Store: memory.New(), getErr: errors.New("disk gone")}
	r := NewResolver(store, 0, zerolog.Nop())

	cred := r.Resolve(context.Background(), LaunchContext{}, HostContext{Hostname: "localhost"})
	assert.True(t, cred.IsZero())

	_, err := r.DevIdentifier(context.Background())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStorage, appErr.Code)
}

func TestStoreWriteFailureStillAttachesDefault(t *testing.T) {
	store := &faultyStore{Store: memory.New(), setErr: errors.New("read-only")}
	r := NewResolver(store, 0, zerolog.Nop())

	cred := r.Resolve(context.Background(), LaunchContext{}, HostContext{Hostname: "localhost"})
	assert.Equal(t, "310836227", cred.Value)
}

func TestSetDevIdentifier(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	r := NewResolver(store, 0, zerolog.Nop())

	require.NoError(t, r.SetDevIdentifier(ctx, 1001))
	assert.Equal(t, "1001", r.Resolve(ctx, LaunchContext{}, HostContext{}).Value)

	for _, bad := range []int64{0, -1} {
		err := r.SetDevIdentifier(ctx, bad)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsValidation())
	}

	id, err := r.DevIdentifier(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id)
}

func TestConcurrentFirstResolveWritesOnce(t *testing.T) {
	store := &faultyStore{Store: memory.New()}
	r := NewResolver(store, 0, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "310836227", r.Resolve(context.Background(), LaunchContext{}, HostContext{}).Value)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.sets)
}
