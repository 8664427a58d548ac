package inactivity

import (
	"time"

	"github.com/pkg/errors"
)

// Config controls the idle timer. It is immutable once the monitor starts.
type Config struct {
	Timeout       time.Duration // Total inactivity budget before forced logout
	Warning       time.Duration // Trailing window in which the warning fires
	CheckInterval time.Duration // How often the monitor re-evaluates
}

// DefaultConfig returns the production defaults: a 24-hour budget with a
// five-minute warning window, checked once a minute.
func DefaultConfig() Config {
	return Config{
		Timeout:       24 * time.Hour,
		Warning:       5 * time.Minute,
		CheckInterval: time.Minute,
	}
}

// Validate rejects configurations the monitor cannot run with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("[Config.Validate] timeout must be positive")
	}
	if c.Warning <= 0 {
		return errors.New("[Config.Validate] warning must be positive")
	}
	if c.CheckInterval <= 0 {
		return errors.New("[Config.Validate] check interval must be positive")
	}
	if c.Warning >= c.Timeout {
		return errors.New("[Config.Validate] warning must be shorter than timeout")
	}
	return nil
}
