package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshop/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key",
		TokenExpiration: expiration,
		Issuer:          "webshop-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	issued, err := svc.GenerateToken(GenerateTokenInput{
		UserCode: "USR1001",
		Email:    "alice@example.com",
		Role:     "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "USR1001", claims.UserCode)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "webshop-test", claims.Issuer)
	assert.False(t, claims.IsAdmin())
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	issued, err := svc.GenerateToken(GenerateTokenInput{UserCode: "USR1001", Role: "user"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issued, err := newTestService(time.Hour).GenerateToken(GenerateTokenInput{UserCode: "USR1001", Role: "user"})
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "a-different-secret",
		TokenExpiration: time.Hour,
		Issuer:          "webshop-test",
	})
	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSigningMethod(t *testing.T) {
	svc := newTestService(time.Hour)

	// Token signed with "none" must never validate
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserCode: "USR1001"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMissingUserCode(t *testing.T) {
	svc := newTestService(time.Hour)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrMissingUserCode)
}

func TestClaimsIsAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: "admin"}).IsAdmin())
	assert.False(t, (&Claims{Role: "user"}).IsAdmin())
}
