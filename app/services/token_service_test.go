package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, refreshTTL, "maison-api", "maison-admin", false, "", "", "test-secret-key-with-enough-entropy")
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Minute, time.Hour, "maison-api", "maison-admin", false, "", "", "")
	require.Error(t, err)
}

func TestGenerateAndValidateAdminTokens(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	access, refresh, err := svc.GenerateAdminTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateAdminToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.AdminID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.NotEmpty(t, accessClaims.TokenID)
	assert.True(t, accessClaims.ExpiresAt.After(accessClaims.IssuedAt))

	refreshClaims, err := svc.ValidateAdminToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt))
}

func TestValidateAdminTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateAdminToken("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateAdminToken("")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAdminTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)
	other, err := NewTokenService(15*time.Minute, 24*time.Hour, "maison-api", "maison-admin", false, "", "", "a-different-secret")
	require.NoError(t, err)

	access, _, err := svc.GenerateAdminTokens(7)
	require.NoError(t, err)

	_, err = other.ValidateAdminToken(access)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAdminTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateAdminTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateAdminToken(access)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshAdminToken(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	access, refresh, err := svc.GenerateAdminTokens(42)
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshAdminToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateAdminToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "access", claims.TokenType)

	// An access token cannot be used as a refresh token
	_, _, err = svc.RefreshAdminToken(access)
	require.Error(t, err)
}

func TestAccessTokenTTL(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)
	assert.Equal(t, 15*time.Minute, svc.AccessTokenTTL())
}
