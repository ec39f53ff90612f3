package store_test

import (
	"context"
	"testing"
	"time"

	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
	"github.com/jrsteele09/stitch-smart/sessions/store"
	"github.com/jrsteele09/stitch-smart/sessions/store/memstore"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/stretchr/testify/require"
)

func testUser() users.User {
	return users.User{
		ID:           "1",
		Email:        "admin@stitchsmart.com",
		Name:         "Admin User",
		Role:         users.RoleAdministrator,
		PasswordHash: "$2a$10$secret",
		LastLogin:    time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecodeKeepsSnapshotFields(t *testing.T) {
	data, err := store.Encode(testUser())
	require.NoError(t, err)
	require.Contains(t, string(data), `"version":1`)
	require.NotContains(t, string(data), "secret")

	got, err := store.Decode(data)
	require.NoError(t, err)

	want := testUser()
	want.PasswordHash = ""
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.Role, got.Role)
	require.True(t, want.LastLogin.Equal(got.LastLogin))
	require.Empty(t, got.PasswordHash)
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  error
	}{
		{"not json", `{"version":`, autherrors.ErrCorruptSession},
		{"unversioned legacy shape", `{"id":"1","email":"a@b.c","role":"admin"}`, autherrors.ErrSessionVersion},
		{"future version", `{"version":2,"user":{"id":"1","role":"admin"}}`, autherrors.ErrSessionVersion},
		{"no user", `{"version":1}`, autherrors.ErrCorruptSession},
		{"unknown role", `{"version":1,"user":{"id":"1","role":"root"}}`, autherrors.ErrCorruptSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Decode([]byte(tt.payload))
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s := store.NewSessionStore(backend)

	u, err := s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, u)

	require.NoError(t, s.Save(ctx, testUser()))
	raw, err := backend.Get(ctx, store.SessionKey)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	u, err = s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "1", u.ID)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	u, err = s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestSessionStoreLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Set(ctx, store.SessionKey, []byte("garbage")))

	u, err := store.NewSessionStore(backend).Load(ctx)
	require.Nil(t, u)
	require.ErrorIs(t, err, autherrors.ErrCorruptSession)
}

func TestSessionStoreRecordKeepsVisitorToken(t *testing.T) {
	ctx := context.Background()
	s := store.NewSessionStore(memstore.New())

	require.NoError(t, s.SaveRecord(ctx, store.Record{User: testUser(), Token: "visitor-token"}))
	rec, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "visitor-token", rec.Token)
	require.Equal(t, "1", rec.User.ID)
	require.Empty(t, rec.User.PasswordHash)

	// Payloads written without a token still load
	legacy, err := store.Encode(testUser())
	require.NoError(t, err)
	require.NotContains(t, string(legacy), "token")
	decoded, err := store.DecodeRecord(legacy)
	require.NoError(t, err)
	require.Empty(t, decoded.Token)
}
