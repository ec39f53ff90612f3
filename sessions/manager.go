// Package sessions owns the signed-in session together with the account
// directory and activity log it is built on. Manager is the only writer of
// all three.
package sessions

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/stitch-smart/activity"
	"github.com/jrsteele09/stitch-smart/auth"
	"github.com/jrsteele09/stitch-smart/guard"
	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
	"github.com/jrsteele09/stitch-smart/sessions/store"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const loginDetails = "User logged in successfully"

// Repos holds the collections the manager owns
type Repos struct {
	Users    users.UserRepo // Account directory
	Activity activity.Repo  // Audit log
}

// Manager holds the current session and funnels every write to the
// directory and log. Reads are safe from any goroutine.
type Manager struct {
	repos     Repos
	verifier  auth.CredentialVerifier
	store     *store.SessionStore
	validator *auth.Validator
	nowTime   func() time.Time // injectable for testing
	logger    zerolog.Logger

	seedUsers        func(now time.Time, passwordHash string) []users.User
	seedActivities   func(now time.Time) []activity.Entry
	seedPasswordHash string

	mu          sync.RWMutex
	current     *users.User // nil when signed out; never shared outside the manager
	token       string      // visitor token bound to current; empty when unbound
	initialized bool
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSeed replaces the fixed seed accounts and activities loaded by Initialize
func WithSeed(seedUsers func(now time.Time, passwordHash string) []users.User, seedActivities func(now time.Time) []activity.Entry) ManagerOption {
	return func(m *Manager) {
		if seedUsers != nil {
			m.seedUsers = seedUsers
		}
		if seedActivities != nil {
			m.seedActivities = seedActivities
		}
	}
}

// WithSeedPasswordHash gives every seeded account this bcrypt hash
func WithSeedPasswordHash(hash string) ManagerOption {
	return func(m *Manager) {
		m.seedPasswordHash = hash
	}
}

// NewManager wires the manager to its collections, credential check and
// session storage. Call Initialize before use.
func NewManager(repos Repos, verifier auth.CredentialVerifier, sessionStore *store.SessionStore, options ...ManagerOption) (*Manager, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewManager] Users repo is required")
	}
	if repos.Activity == nil {
		return nil, errors.New("[NewManager] Activity repo is required")
	}
	if verifier == nil {
		return nil, errors.New("[NewManager] credential verifier is required")
	}
	if sessionStore == nil {
		return nil, errors.New("[NewManager] session store is required")
	}

	m := &Manager{
		repos:          repos,
		verifier:       verifier,
		store:          sessionStore,
		validator:      auth.NewValidator(),
		nowTime:        time.Now,
		logger:         log.Logger,
		seedUsers:      users.SeedUsers,
		seedActivities: activity.SeedEntries,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Initialize loads the seed directory and log, then restores any persisted
// session. A restored session is trusted as-is. Calling it again is a no-op.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	now := m.nowTime()

	for _, u := range m.seedUsers(now, m.seedPasswordHash) {
		if err := m.validator.ValidateUser(u); err != nil {
			return errors.Wrap(err, "[Manager.Initialize] invalid seed account")
		}
		if err := m.repos.Users.Upsert(&u); err != nil {
			return errors.Wrapf(err, "[Manager.Initialize] Users.Upsert %s", u.ID)
		}
	}

	// Seeds come most recent first; prepend oldest first to keep that order
	seed := m.seedActivities(now)
	for i := len(seed) - 1; i >= 0; i-- {
		if err := m.repos.Activity.Prepend(seed[i]); err != nil {
			return errors.Wrapf(err, "[Manager.Initialize] Activity.Prepend %s", seed[i].ID)
		}
	}

	if rec := m.restore(ctx); rec != nil {
		m.current = &rec.User
		m.token = rec.Token
	}
	m.initialized = true

	m.logger.Info().
		Int("users", m.repos.Users.Count()).
		Int("activities", m.repos.Activity.Count()).
		Bool("session_restored", m.current != nil).
		Msg("session manager initialised")
	return nil
}

// restore reads the persisted session. Anything unreadable counts as no session.
func (m *Manager) restore(ctx context.Context) *store.Record {
	rec, err := m.store.LoadRecord(ctx)
	switch {
	case err == nil:
		return rec
	case autherrors.Is(err, autherrors.ErrCorruptSession), autherrors.Is(err, autherrors.ErrSessionVersion):
		m.logger.Warn().Err(err).Msg("discarding unreadable persisted session")
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.Warn().Err(clearErr).Msg("failed to remove unreadable persisted session")
		}
	default:
		m.logger.Warn().Err(err).Msg("session storage unavailable, starting signed out")
	}
	return nil
}

// Login signs in the account with this exact email if the password verifies.
// It reports false for an unknown email and for a wrong password alike, and
// changes nothing in either case. The error is reserved for a cancelled
// context or a verifier that could not run.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, error) {
	_, ok, err := m.SignIn(ctx, email, password)
	return ok, err
}

// SignIn is Login that also returns the visitor token the new session is
// bound to. Only requests presenting that token see the session through
// SessionFor and PermissionsFor.
func (m *Manager) SignIn(ctx context.Context, email, password string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	user, err := m.repos.Users.GetByEmail(email)
	found := err == nil
	if err != nil && !autherrors.Is(err, autherrors.ErrUserNotFound) {
		return "", false, errors.Wrap(err, "[Manager.SignIn] Users.GetByEmail")
	}
	if !found {
		// Verify against an empty account so both failure paths do the same work
		user = users.User{}
	}

	ok, err := m.verifier.Verify(ctx, user, password)
	if err != nil {
		return "", false, errors.Wrap(err, "[Manager.SignIn] verifier.Verify")
	}
	if !found || !ok {
		m.logger.Debug().Msg("login rejected")
		return "", false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowTime()
	snapshot := user
	snapshot.LastLogin = now
	snapshot.PasswordHash = ""
	m.current = &snapshot
	m.token = uuid.NewString()

	if err := m.repos.Users.SetLastLogin(user.ID, now); err != nil {
		m.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login in directory")
	}
	if err := m.store.SaveRecord(ctx, store.Record{User: snapshot, Token: m.token}); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist session")
	}
	if err := m.repos.Activity.Prepend(activity.NewEntry(user.ID, activity.ActionLogin, loginDetails, now)); err != nil {
		m.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record login activity")
	}

	m.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return m.token, true, nil
}

// Logout ends the session and removes the persisted copy. It records no
// activity and is safe to call when already signed out.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logout(ctx)
}

// logout requires the write lock
func (m *Manager) logout(ctx context.Context) {
	if m.current != nil {
		m.logger.Info().Str("user_id", m.current.ID).Msg("logout")
	}
	m.current = nil
	m.token = ""
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("failed to remove persisted session")
	}
}

// EndSession logs out only when token is bound to the current session. It
// reports whether a session was ended.
func (m *Manager) EndSession(ctx context.Context, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.boundTo(token) {
		return false
	}
	m.logout(ctx)
	return true
}

// boundTo requires the lock
func (m *Manager) boundTo(token string) bool {
	if m.current == nil || m.token == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(m.token), []byte(token)) == 1
}

// Current returns a copy of the signed-in account
func (m *Manager) Current() (users.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return users.User{}, false
	}
	return *m.current, true
}

func (m *Manager) Permissions() guard.Permissions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return guard.FromSession(m.current)
}

// SessionFor is Current as seen by the visitor holding token
func (m *Manager) SessionFor(token string) (users.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.boundTo(token) {
		return users.User{}, false
	}
	return *m.current, true
}

// PermissionsFor is Permissions as seen by the visitor holding token.
// Anyone else is treated as signed out.
func (m *Manager) PermissionsFor(token string) guard.Permissions {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.boundTo(token) {
		return guard.Permissions{}
	}
	return guard.FromSession(m.current)
}

// Users lists the directory in registration order
func (m *Manager) Users() []users.User {
	list, err := m.repos.Users.List()
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to list users")
		return nil
	}
	return list
}

// Activities lists the log most recent first
func (m *Manager) Activities() []activity.Entry {
	return m.repos.Activity.List()
}

// Directory is the read-only view of the account directory
func (m *Manager) Directory() users.Reader {
	return m.repos.Users
}

// Log is the read-only view of the activity log
func (m *Manager) Log() activity.Reader {
	return m.repos.Activity
}
