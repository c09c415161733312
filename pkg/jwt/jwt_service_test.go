package jwt

import (
	"Cook-App-Backend/domain"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("64b000000000000000000001", "cook@example.com", "Cook")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.Claims{
		Email:       "cook@example.com",
		SubjectID:   "64b000000000000000000001",
		DisplayName: "Cook",
	}, claims)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateTokenUser("id", "a@b.c", "")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).VerifyToken(context.Background(), token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestVerifyTokenExpired(t *testing.T) {
	claims := jwtUserClaim{
		UserID: "id",
		Email:  "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerifyTokenWithoutEmail(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, err := svc.GenerateTokenUser("id", "", "")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrEmailClaimMissing)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 0).VerifyToken(context.Background(), "not.a.token")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
