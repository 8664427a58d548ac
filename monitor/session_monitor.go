// Package monitor orchestrates periodic session validity checks, refreshing
// sessions that are close to expiry and signing out sessions that have
// already expired.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-session-lifecycle/session"
)

// DefaultCheckInterval is how often the monitor validates the current
// session when no interval is configured.
const DefaultCheckInterval = time.Minute

// Callbacks are the consumer hooks the session monitor invokes. As with the
// inactivity monitor, panics inside callbacks are not recovered.
type Callbacks struct {
	OnExpired   func()
	OnRefreshed func(*session.Session)
}

// SessionMonitor periodically fetches the current session from the provider
// and validates it, refreshing proactively inside the refresh threshold and
// forcing sign-out once the session has expired. A failed proactive refresh
// is non-fatal: the prior session is still valid and the next tick retries.
type SessionMonitor struct {
	provider      session.Provider
	refresher     *session.Refresher
	validator     *session.Validator
	visibility    *VisibilitySignal
	checkInterval time.Duration
	logger        zerolog.Logger
	nowTime       func() time.Time // nowTime function (injectable for testing)

	lock        sync.Mutex
	running     bool
	stopCh      chan struct{}
	unsubscribe func()
	callbacks   Callbacks
}

// SessionMonitorOption defines a function type to modify the SessionMonitor
// instance.
type SessionMonitorOption func(*SessionMonitor)

// WithCheckInterval overrides how often the session is validated.
func WithCheckInterval(interval time.Duration) SessionMonitorOption {
	return func(sm *SessionMonitor) {
		sm.checkInterval = interval
	}
}

// WithLogger sets the logger used for best-effort failures (sign-out and
// proactive refresh errors are logged, never surfaced).
func WithLogger(logger zerolog.Logger) SessionMonitorOption {
	return func(sm *SessionMonitor) {
		sm.logger = logger
	}
}

// WithVisibilitySignal attaches a visibility signal; the monitor re-checks
// the session whenever the signal fires.
func WithVisibilitySignal(vs *VisibilitySignal) SessionMonitorOption {
	return func(sm *SessionMonitor) {
		sm.visibility = vs
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionMonitorOption {
	return func(sm *SessionMonitor) {
		sm.nowTime = nowFunc
	}
}

// NewSessionMonitor initializes a SessionMonitor with its provider and
// refresher dependencies. Optional configuration can be provided via
// options.
func NewSessionMonitor(provider session.Provider, refresher *session.Refresher, options ...SessionMonitorOption) (*SessionMonitor, error) {
	if provider == nil {
		return nil, errors.Wrap(session.NilProviderErr, "[NewSessionMonitor]")
	}
	if refresher == nil {
		return nil, errors.New("[NewSessionMonitor] refresher is required")
	}

	sm := &SessionMonitor{
		provider:      provider,
		refresher:     refresher,
		validator:     session.NewValidator(),
		checkInterval: DefaultCheckInterval,
		logger:        zerolog.Nop(),
		nowTime:       time.Now,
	}

	for _, opt := range options {
		opt(sm)
	}

	return sm, nil
}

// StartSessionMonitoring begins periodic validity checks and re-checks
// whenever the visibility signal fires. Idempotent: calling it while
// already running creates no duplicate timers or listeners.
func (sm *SessionMonitor) StartSessionMonitoring(callbacks Callbacks) {
	sm.lock.Lock()
	if sm.running {
		sm.lock.Unlock()
		return
	}
	sm.running = true
	sm.callbacks = callbacks
	stop := make(chan struct{})
	sm.stopCh = stop
	if sm.visibility != nil {
		sm.unsubscribe = sm.visibility.Subscribe(func() {
			sm.checkSession(context.Background())
		})
	}
	sm.lock.Unlock()

	go sm.run(stop)
}

// StopSessionMonitoring cancels the periodic check and removes the
// visibility listener. Safe to call when not running.
func (sm *SessionMonitor) StopSessionMonitoring() {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	if !sm.running {
		return
	}
	sm.running = false
	close(sm.stopCh)
	sm.stopCh = nil
	if sm.unsubscribe != nil {
		sm.unsubscribe()
		sm.unsubscribe = nil
	}
}

// HandleVisibilityChange registers callback to fire when the application
// becomes visible and returns a cleanup function. Each call registers its
// own independent listener; cleanups do not affect other registrations.
func (sm *SessionMonitor) HandleVisibilityChange(callback func()) func() {
	if sm.visibility == nil {
		return func() {}
	}
	return sm.visibility.Subscribe(callback)
}

// ValidateSession reports the validity of s at the current instant.
func (sm *SessionMonitor) ValidateSession(s *session.Session) session.ValidationResult {
	return sm.validator.Validate(s, sm.nowTime())
}

func (sm *SessionMonitor) run(stop chan struct{}) {
	ticker := time.NewTicker(sm.checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sm.checkSession(context.Background())
		}
	}
}

// checkSession is one monitoring tick: fetch the current session, validate
// it, and either refresh proactively or treat it as expired.
func (sm *SessionMonitor) checkSession(ctx context.Context) {
	sm.lock.Lock()
	running := sm.running
	callbacks := sm.callbacks
	sm.lock.Unlock()
	if !running {
		return
	}

	current, err := sm.provider.CurrentSession(ctx)
	if err != nil {
		sm.logger.Warn().Err(err).Msg("failed to fetch current session")
		return
	}

	result := sm.validator.Validate(current, sm.nowTime())
	switch {
	case !result.IsValid:
		if callbacks.OnExpired != nil {
			callbacks.OnExpired()
		}
		if err := sm.provider.SignOut(ctx); err != nil {
			sm.logger.Warn().Err(err).Msg("sign out after session expiry failed")
		}
	case result.NeedsRefresh:
		refreshed := sm.refresher.Refresh(ctx)
		if refreshed.Error != "" {
			// The prior session is still valid for now; the next tick
			// retries.
			sm.logger.Warn().Str("error", refreshed.Error).Msg("proactive session refresh failed")
			return
		}
		if callbacks.OnRefreshed != nil {
			callbacks.OnRefreshed(refreshed.Session)
		}
	}
}
