// Package inactivity tracks time since the last user activity against a
// configured timeout, raising a warning before forced logout and the logout
// itself. The monitor is a generic idle timer with no knowledge of sessions.
package inactivity

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Callbacks are the consumer hooks the monitor invokes. Panics raised inside
// a callback are not recovered: a broken UI callback surfaces at the call
// site instead of being silently dropped, and callers must account for that.
type Callbacks struct {
	OnWarning  func(timeRemaining time.Duration)
	OnTimeout  func()
	OnActivity func()
}

// Status is a point-in-time snapshot of the monitor, with the remaining
// budget pre-formatted for display.
type Status struct {
	IsActive      bool
	HasWarned     bool
	TimeRemaining string
	LastActivity  time.Time
}

// Monitor is the idle-timer state machine. Its state is a single
// lastActivityAt timestamp plus the hasWarned flag; the Active, Warning and
// Timedout states are recomputed from those on demand, never stored.
type Monitor struct {
	config  Config
	nowTime func() time.Time // nowTime function (injectable for testing)

	lock           sync.Mutex
	callbacks      Callbacks
	lastActivityAt time.Time
	hasWarned      bool
	isActive       bool
	stopCh         chan struct{}
}

// Option defines a function type to modify the Monitor instance.
type Option func(*Monitor)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Monitor) {
		m.nowTime = nowFunc
	}
}

// New initializes a Monitor with the given configuration. Invalid
// configurations are rejected here rather than at Start.
func New(config Config, options ...Option) (*Monitor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[inactivity.New] invalid config")
	}

	monitor := &Monitor{
		config:  config,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(monitor)
	}

	monitor.lastActivityAt = monitor.nowTime()
	return monitor, nil
}

// Start resets the idle state and begins periodic checks at the configured
// interval. Calling Start on a running monitor restarts it with the new
// callbacks and a fresh activity window.
func (m *Monitor) Start(callbacks Callbacks) {
	m.lock.Lock()
	if m.stopCh != nil {
		close(m.stopCh)
	}
	m.callbacks = callbacks
	m.lastActivityAt = m.nowTime()
	m.hasWarned = false
	m.isActive = true
	stop := make(chan struct{})
	m.stopCh = stop
	m.lock.Unlock()

	go m.run(stop)
}

// Stop cancels the periodic check and marks the monitor inactive. It does
// not clear hasWarned: a subsequent Start begins from fresh state anyway.
// Safe to call when not running.
func (m *Monitor) Stop() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
	m.isActive = false
}

// UpdateActivity records user activity. The state reset and OnActivity both
// apply only on the transition out of a warned or timed-out state: calls
// made while the full budget remains are no-ops and never re-invoke the
// callback.
func (m *Monitor) UpdateActivity() {
	m.lock.Lock()
	wasInactive := m.timeRemainingLocked() == 0 || m.hasWarned
	var onActivity func()
	if wasInactive {
		m.lastActivityAt = m.nowTime()
		m.hasWarned = false
		onActivity = m.callbacks.OnActivity
	}
	m.lock.Unlock()

	if onActivity != nil {
		onActivity()
	}
}

// ExtendSession unconditionally resets the full timeout window and clears
// the warning flag. Unlike UpdateActivity it does not require a prior
// warned or timed-out state, and it never fires OnActivity.
func (m *Monitor) ExtendSession() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.lastActivityAt = m.nowTime()
	m.hasWarned = false
}

// TriggerWarning fires OnWarning with the current time remaining,
// unconditionally. Unlike the monitoring tick it does not consult hasWarned
// first, so repeated calls produce repeated invocations; it still marks the
// warning as issued.
func (m *Monitor) TriggerWarning() {
	m.lock.Lock()
	remaining := m.timeRemainingLocked()
	m.hasWarned = true
	onWarning := m.callbacks.OnWarning
	m.lock.Unlock()

	if onWarning != nil {
		onWarning(remaining)
	}
}

// TriggerLogout fires OnTimeout regardless of elapsed time. It backs the
// "log out now" action in the warning dialog.
func (m *Monitor) TriggerLogout() {
	m.lock.Lock()
	onTimeout := m.callbacks.OnTimeout
	m.lock.Unlock()

	if onTimeout != nil {
		onTimeout()
	}
}

// GetTimeRemaining returns how much of the inactivity budget is left,
// floored at zero.
func (m *Monitor) GetTimeRemaining() time.Duration {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.timeRemainingLocked()
}

// ShouldShowWarning reports whether the remaining budget is inside the
// warning window. Warning and timeout are mutually exclusive: once the
// budget reaches zero this returns false.
func (m *Monitor) ShouldShowWarning() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	remaining := m.timeRemainingLocked()
	return remaining > 0 && remaining <= m.config.Warning
}

// IsInactive reports whether the inactivity budget has been exhausted.
func (m *Monitor) IsInactive() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.timeRemainingLocked() == 0
}

// GetStatus returns a snapshot of the monitor state.
func (m *Monitor) GetStatus() Status {
	m.lock.Lock()
	defer m.lock.Unlock()
	return Status{
		IsActive:      m.isActive,
		HasWarned:     m.hasWarned,
		TimeRemaining: formatDuration(m.timeRemainingLocked()),
		LastActivity:  m.lastActivityAt,
	}
}

func (m *Monitor) run(stop chan struct{}) {
	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

// check is one monitoring tick. The tick path enforces warn-once via
// hasWarned; TriggerWarning deliberately does not.
func (m *Monitor) check() {
	m.lock.Lock()
	if !m.isActive {
		m.lock.Unlock()
		return
	}
	remaining := m.timeRemainingLocked()
	warn := !m.hasWarned && remaining > 0 && remaining <= m.config.Warning
	if warn {
		m.hasWarned = true
	}
	timedOut := remaining == 0
	onWarning := m.callbacks.OnWarning
	onTimeout := m.callbacks.OnTimeout
	m.lock.Unlock()

	if warn && onWarning != nil {
		onWarning(remaining)
	}
	if timedOut && onTimeout != nil {
		onTimeout()
	}
}

func (m *Monitor) timeRemainingLocked() time.Duration {
	remaining := m.config.Timeout - m.nowTime().Sub(m.lastActivityAt)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// formatDuration renders a remaining budget as m:ss, or h:mm:ss above an
// hour, for display in the warning dialog.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
