package authn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveUserID(t *testing.T) {
	admin := Identity{UserID: 1, Role: RoleAdmin}
	user := Identity{UserID: 7, Role: RoleUser}

	// Admin may act on an explicitly supplied id.
	assert.Equal(t, uint(42), EffectiveUserID(admin, 42))
	assert.Equal(t, uint(1), EffectiveUserID(admin, 0))
	assert.Equal(t, uint(1), EffectiveUserID(admin, -5))

	// Everyone else acts as themselves, supplied id or not.
	assert.Equal(t, uint(7), EffectiveUserID(user, 42))
	assert.Equal(t, uint(7), EffectiveUserID(user, 0))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	exp := time.Now().Add(time.Minute)

	raw, err := SignAccessToken(12, RoleAdmin, secret, exp)
	require.NoError(t, err)

	ident, err := ParseAccessToken(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(12), ident.UserID)
	assert.Equal(t, RoleAdmin, ident.Role)
	assert.True(t, ident.IsAdmin())
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	raw, err := SignAccessToken(12, RoleUser, []byte("secret-a"), time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, []byte("secret-b"))
	assert.Error(t, err)
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	raw, err := SignAccessToken(12, RoleUser, secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, secret)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := []byte("refresh-secret")

	raw, jti, err := SignRefreshToken(34, secret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	userID, parsedJTI, err := ParseRefreshToken(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(34), userID)
	assert.Equal(t, jti, parsedJTI)

	// Every mint gets a fresh JTI.
	_, jti2, err := SignRefreshToken(34, secret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, jti, jti2)
}
