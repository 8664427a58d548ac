package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// RefreshResult carries the outcome of a refresh attempt. On failure Session
// is nil and Error holds the provider's message. Refresh never panics and
// never propagates a provider error past this shape.
type RefreshResult struct {
	Session *Session
	Error   string
}

// Refresher obtains new sessions from the identity provider. Concurrent
// calls are neither serialized nor deduplicated: N concurrent refreshes
// produce N provider calls, and the last one to resolve is what the
// consumer sees.
type Refresher struct {
	provider  Provider
	validator *Validator
	nowTime   func() time.Time // nowTime function (injectable for testing)
}

// RefresherOption defines a function type to modify the Refresher instance.
type RefresherOption func(*Refresher)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.nowTime = nowFunc
	}
}

// NewRefresher initializes a Refresher with the identity-provider client it
// delegates to. Optional configuration can be provided via options.
func NewRefresher(provider Provider, options ...RefresherOption) (*Refresher, error) {
	if provider == nil {
		return nil, errors.Wrap(NilProviderErr, "[NewRefresher]")
	}

	refresher := &Refresher{
		provider:  provider,
		validator: NewValidator(),
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(refresher)
	}

	return refresher, nil
}

// Refresh asks the provider for a new session. Provider failures are
// converted into the result's Error field.
func (r *Refresher) Refresh(ctx context.Context) RefreshResult {
	s, err := r.provider.RefreshSession(ctx)
	if err != nil {
		return RefreshResult{Error: errors.Wrap(err, "[Refresher.Refresh] provider.RefreshSession").Error()}
	}
	if s == nil {
		return RefreshResult{Error: NoSessionErr.Error()}
	}
	return RefreshResult{Session: s}
}

// ForceRefresh refreshes and then validates the fresh session, so callers
// get the same ValidationResult shape regardless of code path. The refreshed
// session is returned alongside the result so it can be persisted.
func (r *Refresher) ForceRefresh(ctx context.Context) (ValidationResult, *Session, error) {
	result := r.Refresh(ctx)
	if result.Error != "" {
		return ValidationResult{}, nil, errors.New(result.Error)
	}
	return r.validator.Validate(result.Session, r.nowTime()), result.Session, nil
}
