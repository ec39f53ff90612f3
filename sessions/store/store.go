// Package store persists the current session in client-local durable
// storage. The payload is a versioned JSON snapshot of the signed-in
// account kept under a single key.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
	"github.com/jrsteele09/stitch-smart/users"
)

const (
	// SessionKey is the storage key holding the persisted session
	SessionKey = "user"
	// PayloadVersion is the only payload layout this build reads and writes
	PayloadVersion = 1
)

// Backend is a client-local key/value store. Get returns nil, nil when the
// key is absent; Delete of an absent key is not an error.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type payload struct {
	Version int            `json:"version"`
	User    *sessionRecord `json:"user"`
	Token   string         `json:"token,omitempty"`
}

// Record is a persisted session: the account snapshot plus the visitor
// token it is bound to. Token is empty for sessions saved without one.
type Record struct {
	User  users.User
	Token string
}

// sessionRecord pins the persisted field set so that later changes to
// users.User do not silently change the stored layout.
type sessionRecord struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      users.RoleType `json:"role"`
	LastLogin time.Time      `json:"lastLogin"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Encode serialises an account snapshot as a session payload
func Encode(user users.User) ([]byte, error) {
	return EncodeRecord(Record{User: user})
}

// EncodeRecord serialises a session and its visitor token
func EncodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(payload{
		Version: PayloadVersion,
		User: &sessionRecord{
			ID:        rec.User.ID,
			Email:     rec.User.Email,
			Name:      rec.User.Name,
			Role:      rec.User.Role,
			LastLogin: rec.User.LastLogin,
			CreatedAt: rec.User.CreatedAt,
		},
		Token: rec.Token,
	})
}

// Decode parses a session payload. Malformed JSON, a missing account or an
// unknown role is ErrCorruptSession; any other version is ErrSessionVersion.
func Decode(data []byte) (users.User, error) {
	rec, err := DecodeRecord(data)
	return rec.User, err
}

func DecodeRecord(data []byte) (Record, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Record{}, fmt.Errorf("%w: %v", autherrors.ErrCorruptSession, err)
	}
	if p.Version != PayloadVersion {
		return Record{}, fmt.Errorf("%w: %d", autherrors.ErrSessionVersion, p.Version)
	}
	if p.User == nil || p.User.ID == "" {
		return Record{}, fmt.Errorf("%w: no account", autherrors.ErrCorruptSession)
	}
	if !p.User.Role.Valid() {
		return Record{}, fmt.Errorf("%w: role %q", autherrors.ErrCorruptSession, p.User.Role)
	}
	return Record{
		User: users.User{
			ID:        p.User.ID,
			Email:     p.User.Email,
			Name:      p.User.Name,
			Role:      p.User.Role,
			LastLogin: p.User.LastLogin,
			CreatedAt: p.User.CreatedAt,
		},
		Token: p.Token,
	}, nil
}

// SessionStore reads and writes the session payload through a Backend
type SessionStore struct {
	backend Backend
}

func NewSessionStore(backend Backend) *SessionStore {
	return &SessionStore{backend: backend}
}

// Load returns the persisted account, or nil when nothing is stored.
// Decode failures are returned wrapped so the caller can choose to ignore them.
func (s *SessionStore) Load(ctx context.Context) (*users.User, error) {
	rec, err := s.LoadRecord(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	return &rec.User, nil
}

// LoadRecord is Load with the visitor token
func (s *SessionStore) LoadRecord(ctx context.Context) (*Record, error) {
	data, err := s.backend.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", autherrors.ErrStoreUnavailable, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SessionStore) Save(ctx context.Context, user users.User) error {
	return s.SaveRecord(ctx, Record{User: user})
}

func (s *SessionStore) SaveRecord(ctx context.Context, rec Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Set(ctx, SessionKey, data); err != nil {
		return fmt.Errorf("%w: %w", autherrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("%w: %w", autherrors.ErrStoreUnavailable, err)
	}
	return nil
}
