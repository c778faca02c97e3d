package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", hash)

	require.True(t, CheckPassword(hash, "correct-horse"))
	require.False(t, CheckPassword(hash, "wrong-horse"))
	require.NoError(t, ValidateHash(hash))
	require.Error(t, ValidateHash("plaintext"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", TokenExp: time.Hour, Issuer: "test"})

	token, expiresIn, err := svc.GenerateToken("ada.obi@example.com", RoleStudent)
	require.NoError(t, err)
	require.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "ada.obi@example.com", claims.Email)
	require.Equal(t, RoleStudent, claims.Role)
	require.Equal(t, "test", claims.Issuer)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "secret-a", TokenExp: time.Hour})
	verifier := NewJWTService(JWTConfig{SecretKey: "secret-b", TokenExp: time.Hour})

	token, _, err := issuer.GenerateToken("ada.obi@example.com", RoleStudent)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", TokenExp: -time.Minute})

	token, _, err := svc.GenerateToken("ada.obi@example.com", RoleStudent)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ExtractBearerToken("Basic dXNlcg==")
	require.ErrorIs(t, err, ErrInvalidToken)
}
