package session

import "time"

const (
	// RefreshThreshold is how close to expiry a session may get before it is
	// flagged for proactive renewal. A session with exactly this much time
	// remaining does not yet need a refresh.
	RefreshThreshold = 10 * time.Minute

	// DefaultExpiry is assumed when the provider omits ExpiresAt.
	DefaultExpiry = 24 * time.Hour
)

// ValidationResult describes a session's validity at a single instant.
// It is recomputed on every call and never cached.
type ValidationResult struct {
	IsValid       bool
	NeedsRefresh  bool
	TimeRemaining time.Duration
	ExpiresAt     time.Time
}

// Validator computes session validity. It is stateless and performs no I/O.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports whether the session is still usable at the given instant
// and whether it should be proactively refreshed. It fails closed: a nil
// session or one without an access token is reported invalid rather than
// returning an error.
func (v *Validator) Validate(s *Session, now time.Time) ValidationResult {
	if s == nil || s.AccessToken == "" {
		return ValidationResult{}
	}

	expiresAt := s.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultExpiry)
	}

	remaining := expiresAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	return ValidationResult{
		IsValid:       remaining > 0,
		NeedsRefresh:  remaining > 0 && remaining < RefreshThreshold,
		TimeRemaining: remaining,
		ExpiresAt:     expiresAt,
	}
}
