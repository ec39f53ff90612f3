package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// StoreType selects the client-local storage used for the persisted session.
type StoreType string

const (
	StoreFile   StoreType = "file"
	StoreSQLite StoreType = "sqlite"
	StoreMemory StoreType = "memory"
)

// CredentialMode selects how login passwords are verified.
type CredentialMode string

const (
	CredentialShared CredentialMode = "shared" // single shared placeholder password
	CredentialBcrypt CredentialMode = "bcrypt" // per-account bcrypt hash
)

const (
	sessionStoreVar   = "SESSION_STORE"
	sessionDirVar     = "SESSION_DIR"
	sessionDBVar      = "SESSION_DB"
	credentialModeVar = "CREDENTIAL_MODE"
	sharedPasswordVar = "SHARED_PASSWORD"
	activeWindowVar   = "ACTIVE_WINDOW"

	defaultActiveWindow = 24 * time.Hour
)

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionStore() StoreType {
	switch st := StoreType(strings.ToLower(GetEnv(sessionStoreVar, string(StoreFile)))); st {
	case StoreFile, StoreSQLite, StoreMemory:
		return st
	default:
		log.Warn().Str("store", string(st)).Msg("unknown session store, falling back to file")
		return StoreFile
	}
}

// GetSessionDir is where the file store keeps one JSON document per key
func (Session) GetSessionDir() string {
	return GetEnv(sessionDirVar, filepath.Join(EnvVars{}.GetDataFolder(), "session"))
}

func (Session) GetSessionDB() string {
	return GetEnv(sessionDBVar, filepath.Join(EnvVars{}.GetDataFolder(), "session.db"))
}

func (Session) GetCredentialMode() CredentialMode {
	if CredentialMode(strings.ToLower(GetEnv(credentialModeVar, ""))) == CredentialBcrypt {
		return CredentialBcrypt
	}
	return CredentialShared
}

// GetSharedPassword is the placeholder credential accepted for every seeded
// account in shared mode, and the seed password hashed in bcrypt mode.
func (Session) GetSharedPassword() string {
	return GetEnv(sharedPasswordVar, "password")
}

// GetActiveWindow is how recent a last login must be for an account to count
// as active on the admin dashboard.
func (Session) GetActiveWindow() time.Duration {
	raw := GetEnv(activeWindowVar, "")
	if raw == "" {
		return defaultActiveWindow
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("value", raw).Msg("invalid ACTIVE_WINDOW, using 24h")
		return defaultActiveWindow
	}
	return d
}
