package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)
	return m
}

func TestJWTManager_RequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&JWTConfig{})
	assert.ErrorIs(t, err, ErrSecretKeyEmpty)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken(&Claims{
		Payload: map[string]any{
			"uid":      "user-1",
			"username": "tony",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.GetString("uid"))
	assert.Equal(t, "tony", claims.GetString("username"))
	assert.Empty(t, claims.GetString("missing"))
}

func TestJWTManager_StripsBearerPrefix(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken(&Claims{Payload: map[string]any{"uid": "u"}})
	require.NoError(t, err)

	claims, err := m.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u", claims.GetString("uid"))
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_WrongKey(t *testing.T) {
	m := newTestManager(t)
	other, err := NewJWTManager(&JWTConfig{SecretKey: "other-secret"})
	require.NoError(t, err)

	token, err := m.GenerateToken(&Claims{Payload: map[string]any{"uid": "u"}})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
