package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ExpiryFromToken extracts the expiry from a JWT access token's exp claim.
// The signature is not verified: the result is used only to schedule
// refreshes, never to grant access.
func ExpiryFromToken(accessToken string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}, errors.Wrap(err, "[ExpiryFromToken] ParseUnverified")
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, NoExpiryClaimErr
	}
	return claims.ExpiresAt.Time, nil
}
