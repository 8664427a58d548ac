package config

import (
	"os"
	"time"
)

const (
	appNameVar            = "APP_NAME"
	inactivityTimeoutVar  = "INACTIVITY_TIMEOUT"
	inactivityWarningVar  = "INACTIVITY_WARNING"
	inactivityIntervalVar = "INACTIVITY_CHECK_INTERVAL"
	sessionIntervalVar    = "SESSION_CHECK_INTERVAL"
	issuerURLVar          = "OIDC_ISSUER_URL"
	clientIDVar           = "OIDC_CLIENT_ID"
	clientSecretVar       = "OIDC_CLIENT_SECRET"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session Lifecycle")
}

func (EnvVars) GetInactivityTimeout() time.Duration {
	return getDuration(inactivityTimeoutVar, 24*time.Hour)
}

func (EnvVars) GetInactivityWarning() time.Duration {
	return getDuration(inactivityWarningVar, 5*time.Minute)
}

func (EnvVars) GetInactivityCheckInterval() time.Duration {
	return getDuration(inactivityIntervalVar, time.Minute)
}

func (EnvVars) GetSessionCheckInterval() time.Duration {
	return getDuration(sessionIntervalVar, time.Minute)
}

func (EnvVars) GetIssuerURL() string {
	return GetEnv(issuerURLVar, "")
}

func (EnvVars) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (EnvVars) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
