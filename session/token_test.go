package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-lifecycle/session"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiryFromToken(t *testing.T) {
	expiry := time.Date(2025, time.March, 14, 13, 0, 0, 0, time.UTC)
	raw := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})

	got, err := session.ExpiryFromToken(raw)

	require.NoError(t, err)
	require.True(t, got.Equal(expiry))
}

func TestExpiryFromTokenWithoutExpClaim(t *testing.T) {
	raw := signedToken(t, jwt.RegisteredClaims{Subject: "user-1"})

	_, err := session.ExpiryFromToken(raw)

	require.ErrorIs(t, err, session.NoExpiryClaimErr)
}

func TestExpiryFromMalformedToken(t *testing.T) {
	_, err := session.ExpiryFromToken("not-a-jwt")

	require.Error(t, err)
}
