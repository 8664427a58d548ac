package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-lifecycle/session"
)

var testNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func sessionExpiringIn(expiresIn time.Duration) *session.Session {
	return &session.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    testNow.Add(expiresIn),
	}
}

func TestValidateExactlyAtRefreshThreshold(t *testing.T) {
	result := session.NewValidator().Validate(sessionExpiringIn(10*time.Minute), testNow)

	require.True(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
	require.Equal(t, 10*time.Minute, result.TimeRemaining)
}

func TestValidateJustInsideRefreshThreshold(t *testing.T) {
	result := session.NewValidator().Validate(sessionExpiringIn(10*time.Minute-time.Second), testNow)

	require.True(t, result.IsValid)
	require.True(t, result.NeedsRefresh)
}

func TestValidateExpiredSession(t *testing.T) {
	result := session.NewValidator().Validate(sessionExpiringIn(-time.Hour), testNow)

	require.False(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
	require.Equal(t, time.Duration(0), result.TimeRemaining)
}

func TestValidateExpiringRightNow(t *testing.T) {
	result := session.NewValidator().Validate(sessionExpiringIn(0), testNow)

	require.False(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
	require.Equal(t, time.Duration(0), result.TimeRemaining)
}

func TestValidateNilSessionFailsClosed(t *testing.T) {
	result := session.NewValidator().Validate(nil, testNow)

	require.False(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
	require.Zero(t, result.TimeRemaining)
	require.True(t, result.ExpiresAt.IsZero())
}

func TestValidateEmptyAccessTokenFailsClosed(t *testing.T) {
	s := &session.Session{AccessToken: "", ExpiresAt: testNow.Add(time.Hour)}
	result := session.NewValidator().Validate(s, testNow)

	require.False(t, result.IsValid)
}

func TestValidateMissingExpiryDefaultsToTwentyFourHours(t *testing.T) {
	s := &session.Session{AccessToken: "access-token"}
	result := session.NewValidator().Validate(s, testNow)

	require.True(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
	require.Equal(t, session.DefaultExpiry, result.TimeRemaining)
	require.Equal(t, testNow.Add(session.DefaultExpiry), result.ExpiresAt)
}
