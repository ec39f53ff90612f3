package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/stitch-smart/auth"
	"github.com/jrsteele09/stitch-smart/internal/config"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, h http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// sessionBody fetches /api/session carrying the cookies a login response set
func sessionBody(h http.Handler, loginRec *httptest.ResponseRecorder) string {
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	if loginRec != nil {
		for _, c := range loginRec.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestSessionSurvivesRestartWithEachDurableStore(t *testing.T) {
	for _, storeType := range []string{"file", "sqlite"} {
		t.Run(storeType, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("ENV", "TEST")
			t.Setenv("SESSION_STORE", storeType)
			t.Setenv("SESSION_DIR", filepath.Join(dir, "session"))
			t.Setenv("SESSION_DB", filepath.Join(dir, "db", "session.db"))

			first, err := newApplication(context.Background(), config.New())
			require.NoError(t, err)
			rec := login(t, first.handler, "jane@example.com", "password")
			require.Equal(t, http.StatusSeeOther, rec.Code)
			require.Equal(t, "/", rec.Header().Get("Location"))
			first.Close()

			second, err := newApplication(context.Background(), config.New())
			require.NoError(t, err)
			defer second.Close()
			require.Contains(t, sessionBody(second.handler, rec), `"isAuthenticated":true`)
			require.Contains(t, sessionBody(second.handler, rec), "jane@example.com")
			require.Contains(t, sessionBody(second.handler, nil), `"isAuthenticated":false`)
		})
	}
}

func TestMemoryStoreStartsSignedOut(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_STORE", "memory")

	app, err := newApplication(context.Background(), config.New())
	require.NoError(t, err)
	defer app.Close()
	require.Contains(t, sessionBody(app.handler, nil), `"isAuthenticated":false`)
}

func TestCredentialVerifierModes(t *testing.T) {
	t.Setenv("CREDENTIAL_MODE", "shared")
	t.Setenv("SHARED_PASSWORD", "opensesame")
	verifier, options, err := credentialVerifier(config.Session{})
	require.NoError(t, err)
	require.Empty(t, options)
	ok, err := verifier.Verify(context.Background(), users.User{}, "opensesame")
	require.NoError(t, err)
	require.True(t, ok)

	t.Setenv("CREDENTIAL_MODE", "bcrypt")
	verifier, options, err = credentialVerifier(config.Session{})
	require.NoError(t, err)
	require.Len(t, options, 1)
	require.IsType(t, auth.PasswordHashVerifier{}, verifier)
}

func TestBcryptModeLogin(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("CREDENTIAL_MODE", "bcrypt")
	t.Setenv("SHARED_PASSWORD", "s3cret-seed")

	app, err := newApplication(context.Background(), config.New())
	require.NoError(t, err)
	defer app.Close()

	rec := login(t, app.handler, "admin@stitchsmart.com", "password")
	require.Contains(t, rec.Header().Get("Location"), "/login?")

	rec = login(t, app.handler, "admin@stitchsmart.com", "s3cret-seed")
	require.Equal(t, "/", rec.Header().Get("Location"))
	require.Contains(t, sessionBody(app.handler, rec), `"isAdmin":true`)
}
