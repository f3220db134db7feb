package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/ikigain/ForestOS/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-test-secret-test-secret!"

type fixture struct {
	store    *repository.Store
	tokens   *TokenService
	resolver *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := NewTokenService(secret, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "usr_a", Email: "a@example.com", IsActive: true}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "usr_off", Email: "off@example.com", IsActive: false}))
	require.NoError(t, store.UserPlants.Create(ctx, &models.UserPlant{ID: "upl_a", UserID: "usr_a", SpeciesID: "monstera_deliciosa"}))
	require.NoError(t, store.Sensors.Create(ctx, &models.Sensor{ID: "sns_1", DeviceID: "dev-1", UserPlantID: "upl_a", AuthToken: "token-one"}))
	require.NoError(t, store.Sensors.Create(ctx, &models.Sensor{ID: "sns_2", DeviceID: "dev-2", UserPlantID: "upl_a", AuthToken: "token-two"}))

	return &fixture{store: store, tokens: tokens, resolver: NewResolver(tokens, store.Users, store.Sensors)}
}

func (f *fixture) bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := f.tokens.Issue(userID)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestResolveUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.resolver.ResolveUser(ctx, f.bearer(t, "usr_a"))
	require.NoError(t, err)
	assert.Equal(t, KindUser, p.Kind)
	assert.Equal(t, "usr_a", p.UserID)
}

func TestResolveUserFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := NewTokenService(secret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, err := expired.Issue("usr_a")
	require.NoError(t, err)

	otherKey, err := NewTokenService("another-secret-another-secret-1234", time.Hour).Issue("usr_a")
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "usr_a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"expired":        "Bearer " + expiredTok,
		"wrong key":      "Bearer " + otherKey,
		"alg none":       "Bearer " + noneTok,
		"unknown user":   f.bearer(t, "usr_ghost"),
		"inactive user":  f.bearer(t, "usr_off"),
		"device token":   "Bearer token-one",
		"garbage bearer": "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.resolver.ResolveUser(ctx, header)
			apiErr, ok := errors.AsAPIError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, 401, apiErr.Code)
			assert.Equal(t, errors.MsgInvalidCredentials, apiErr.Message)
		})
	}
}

func TestHeaderFormat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, header := range []string{"", "token-one", "Basic dXNlcjpwYXNz", "Bearer ", "bearer token-one"} {
		_, err := f.resolver.ResolveUser(ctx, header)
		apiErr, ok := errors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeAuthFormat, apiErr.Type, "header %q", header)
		assert.Equal(t, errors.MsgAuthFormat, apiErr.Message)

		_, err = f.resolver.ResolveDevice(ctx, header, "dev-1")
		apiErr, ok = errors.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeAuthFormat, apiErr.Type)
	}
}

func TestResolveDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.resolver.ResolveDevice(ctx, "Bearer token-one", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, KindDevice, p.Kind)
	assert.Equal(t, "sns_1", p.SensorID)
	assert.Empty(t, p.UserID)
}

func TestResolveDeviceFailuresShareOneMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, header, device string
	}{
		{"other device token", "Bearer token-two", "dev-1"},
		{"unknown device", "Bearer token-one", "dev-404"},
		{"wrong token", "Bearer nope", "dev-1"},
		{"user jwt", f.bearer(t, "usr_a"), "dev-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.resolver.ResolveDevice(ctx, tc.header, tc.device)
			apiErr, ok := errors.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, 401, apiErr.Code)
			assert.Equal(t, errors.MsgInvalidDevice, apiErr.Message)
		})
	}
}

func TestResolveDispatchesOnKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.resolver.Resolve(ctx, KindDevice, "Bearer token-two", "dev-2")
	require.NoError(t, err)
	assert.Equal(t, "sns_2", p.SensorID)

	_, err = f.resolver.Resolve(ctx, KindUser, "Bearer token-two", "dev-2")
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestDeviceTokenIssuer(t *testing.T) {
	issuer := NewDeviceTokenIssuer()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := issuer.Issue()
		require.NoError(t, err)
		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		assert.Len(t, raw, DeviceTokenBytes)
		assert.NotContains(t, tok, "=")
		assert.False(t, seen[tok])
		seen[tok] = true
	}

	short := &DeviceTokenIssuer{entropy: bytes.NewReader([]byte{1, 2, 3})}
	_, err := short.Issue()
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
	assert.False(t, BurnPasswordCheck("anything"))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{Kind: KindUser, UserID: "usr_a"})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "usr_a", p.UserID)
	assert.Equal(t, "user", p.Kind.String())
}
