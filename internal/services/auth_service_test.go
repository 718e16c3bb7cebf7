package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticatorRoundTrip(t *testing.T) {
	auth := NewJWTAuthenticator("test-secret")
	token, err := auth.SignToken(types.Session{UserID: "u-1", Email: "ravi@example.com", Role: types.RoleOwner},
		jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	session, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &types.Session{UserID: "u-1", Email: "ravi@example.com", Role: types.RoleOwner}, session)
}

func TestJWTAuthenticatorAdminRole(t *testing.T) {
	auth := NewJWTAuthenticator("test-secret")

	token, err := auth.SignToken(types.Session{UserID: "a-1", Role: types.RoleAdmin}, nil)
	require.NoError(t, err)
	session, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, session.IsAdmin())

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "u-2",
		"user_metadata": map[string]any{"role": "admin"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	session, err = auth.Authenticate(context.Background(), forged)
	require.NoError(t, err)
	assert.False(t, session.IsAdmin())
	assert.Equal(t, types.RoleStudent, session.Role)
}

func TestJWTAuthenticatorRejects(t *testing.T) {
	auth := NewJWTAuthenticator("test-secret")
	other := NewJWTAuthenticator("other-secret")

	wrongKey, err := other.SignToken(types.Session{UserID: "u-1"}, nil)
	require.NoError(t, err)
	expired, err := auth.SignToken(types.Session{UserID: "u-1"}, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":    "not-a-token",
		"wrong key":  wrongKey,
		"expired":    expired,
		"alg none":   noneAlg,
		"no subject": noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Authenticate(context.Background(), token)
			var ce *types.CustomError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, http.StatusUnauthorized, ce.Code)
		})
	}
}

func TestSessionFromClaimsRoles(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   string
	}{
		{"metadata role", map[string]any{"sub": "u", "user_metadata": map[string]any{"role": "maushi"}}, types.RoleHelper},
		{"helper alias", map[string]any{"sub": "u", "role": "helper"}, types.RoleHelper},
		{"authorizer roles list", map[string]any{"sub": "u", "roles": []any{"user", "admin"}}, types.RoleAdmin},
		{"no role", map[string]any{"sub": "u"}, types.RoleStudent},
		{"unknown role", map[string]any{"sub": "u", "role": "superuser"}, types.RoleStudent},
		{"metadata admin ignored", map[string]any{"sub": "u", "user_metadata": map[string]any{"role": "admin"}, "roles": []any{"user"}}, types.RoleStudent},
		{"claim admin ignored", map[string]any{"sub": "u", "role": "admin"}, types.RoleStudent},
		{"metadata admin keeps granted role", map[string]any{"sub": "u", "user_metadata": map[string]any{"role": "admin"}, "roles": []any{"owner"}}, types.RoleOwner},
		{"roles admin wins over metadata", map[string]any{"sub": "u", "user_metadata": map[string]any{"role": "owner"}, "roles": []any{"admin"}}, types.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SessionFromClaims(tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Role)
		})
	}
}

type failingAuth struct{}

func (failingAuth) Authenticate(context.Context, string) (*types.Session, error) {
	return nil, errors.New("down")
}

func (failingAuth) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthCheck(t *testing.T) {
	store := newTestStore(t)
	deps := HealthDeps{
		DB:      store.DB(),
		Objects: storage.NewMemoryStore("http://localhost:3000"),
		Auth:    NewJWTAuthenticator("s"),
	}

	result := HealthCheck(context.Background(), deps)
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "ok", result.ObjectStore)
	assert.Equal(t, "MemoryStore", result.Details["object_store"])
	assert.Empty(t, result.Cache)

	deps.Auth = failingAuth{}
	result = HealthCheck(context.Background(), deps)
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Auth)
	assert.Contains(t, result.ErrorMessage, "connection refused")
}
