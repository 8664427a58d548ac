package config

import "time"

type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAppName() string
	GetInactivityTimeout() time.Duration
	GetInactivityWarning() time.Duration
	GetInactivityCheckInterval() time.Duration
	GetSessionCheckInterval() time.Duration
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
