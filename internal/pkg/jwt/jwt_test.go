package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
)

func newTestService() Service {
	return NewJWTService("test-secret", "1h", "168h")
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	service := newTestService()

	tokenString, expiresAt, err := service.GenerateAccessToken("user-1", "budi@example.com", user.RoleTeacher)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := service.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claim := func(key string) interface{} {
		v, ok := token.Get(key)
		require.True(t, ok, "missing claim %s", key)
		return v
	}
	assert.Equal(t, "user-1", claim("user_id"))
	assert.Equal(t, "budi@example.com", claim("email"))
	assert.Equal(t, "teacher", claim("role"))
	assert.Equal(t, "access", claim("type"))
}

func TestGenerateRefreshToken_Type(t *testing.T) {
	service := newTestService()

	tokenString, _, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := service.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	tokenType, ok := token.Get("type")
	require.True(t, ok)
	assert.Equal(t, "refresh", tokenType)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	service := newTestService()

	tokenString, expiresIn, err := service.GenerateSSEToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := service.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateSSEToken_RejectsOtherTypes(t *testing.T) {
	service := newTestService()

	accessToken, _, err := service.GenerateAccessToken("user-1", "budi@example.com", user.RoleStudent)
	require.NoError(t, err)

	_, err = service.ValidateSSEToken(accessToken)
	assert.Error(t, err)

	refreshToken, _, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = service.ValidateSSEToken(refreshToken)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsWrongSecret(t *testing.T) {
	service := newTestService()
	other := NewJWTService("another-secret", "1h", "168h")

	tokenString, _, err := other.GenerateSSEToken("user-1")
	require.NoError(t, err)

	_, err = service.ValidateSSEToken(tokenString)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	service := newTestService()

	tokenString, _, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, service.IsTokenRevoked(tokenString))
	service.RevokeToken(tokenString)
	assert.True(t, service.IsTokenRevoked(tokenString))
}

func TestRefreshTokenCookie(t *testing.T) {
	service := newTestService()

	expiresAt := time.Now().Add(168 * time.Hour).Unix()
	cookie := service.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, time.Unix(expiresAt, 0).Unix(), cookie.Expires.Unix())
}
