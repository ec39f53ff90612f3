package config

import "time"

type Config interface {
	EnvConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

// SessionConfig covers how the session core verifies credentials and where
// it keeps the persisted session.
type SessionConfig interface {
	GetSessionStore() StoreType
	GetSessionDir() string
	GetSessionDB() string
	GetCredentialMode() CredentialMode
	GetSharedPassword() string
	GetActiveWindow() time.Duration
}

type mainConfig struct {
	EnvVars
	Session
}

func New() Config {
	return mainConfig{}
}
