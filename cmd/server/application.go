package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	fakeactivityrepo "github.com/jrsteele09/stitch-smart/activity/repofake"
	"github.com/jrsteele09/stitch-smart/admin"
	"github.com/jrsteele09/stitch-smart/auth"
	"github.com/jrsteele09/stitch-smart/internal/config"
	"github.com/jrsteele09/stitch-smart/server"
	"github.com/jrsteele09/stitch-smart/sessions"
	"github.com/jrsteele09/stitch-smart/sessions/store"
	"github.com/jrsteele09/stitch-smart/sessions/store/filestore"
	"github.com/jrsteele09/stitch-smart/sessions/store/memstore"
	"github.com/jrsteele09/stitch-smart/sessions/store/sqlitestore"
	"github.com/jrsteele09/stitch-smart/users"
	fakeuserrepo "github.com/jrsteele09/stitch-smart/users/repofake"
	"github.com/rs/zerolog/log"
)

// application is the wired session core and its HTTP front end
type application struct {
	handler http.Handler
	closers []func() error
}

func newApplication(ctx context.Context, c config.Config) (*application, error) {
	app := &application{}

	backend, err := app.openSessionBackend(ctx, c)
	if err != nil {
		app.Close()
		return nil, err
	}

	verifier, options, err := credentialVerifier(c)
	if err != nil {
		app.Close()
		return nil, err
	}

	repos := sessions.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Activity: fakeactivityrepo.NewFakeActivityRepo(),
	}
	manager, err := sessions.NewManager(repos, verifier, store.NewSessionStore(backend), append(options, sessions.WithLogger(log.Logger))...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("sessions.NewManager: %w", err)
	}
	if err := manager.Initialize(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("manager.Initialize: %w", err)
	}

	aggregator, err := admin.NewAggregator(manager.Directory(), manager.Log(), admin.WithActiveWindow(c.GetActiveWindow()))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("admin.NewAggregator: %w", err)
	}

	handler, err := server.New(c, manager, aggregator)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("server.New: %w", err)
	}
	app.handler = handler
	return app, nil
}

func (app *application) openSessionBackend(ctx context.Context, c config.SessionConfig) (store.Backend, error) {
	switch c.GetSessionStore() {
	case config.StoreMemory:
		log.Warn().Msg("session store is in memory, sessions will not survive a restart")
		return memstore.New(), nil
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(c.GetSessionDB()), 0o700); err != nil {
			return nil, fmt.Errorf("create session db dir: %w", err)
		}
		db, err := sqlitestore.Open(ctx, c.GetSessionDB())
		if err != nil {
			return nil, fmt.Errorf("sqlitestore.Open %s: %w", c.GetSessionDB(), err)
		}
		app.closers = append(app.closers, db.Close)
		log.Info().Str("db", c.GetSessionDB()).Msg("session store: sqlite")
		return db, nil
	default:
		fs, err := filestore.New(c.GetSessionDir())
		if err != nil {
			return nil, fmt.Errorf("filestore.New %s: %w", c.GetSessionDir(), err)
		}
		log.Info().Str("dir", c.GetSessionDir()).Msg("session store: file")
		return fs, nil
	}
}

// credentialVerifier picks the password check. In bcrypt mode the seeded
// accounts are given a hash of the configured shared password.
func credentialVerifier(c config.SessionConfig) (auth.CredentialVerifier, []sessions.ManagerOption, error) {
	if c.GetCredentialMode() != config.CredentialBcrypt {
		if c.GetSharedPassword() == auth.DefaultSharedPassword {
			log.Warn().Msg("using the default shared password for every account")
		}
		return auth.NewSharedSecretVerifier(c.GetSharedPassword()), nil, nil
	}

	hash, err := users.HashPassword(c.GetSharedPassword())
	if err != nil {
		return nil, nil, fmt.Errorf("hash seed password: %w", err)
	}
	return auth.PasswordHashVerifier{}, []sessions.ManagerOption{sessions.WithSeedPasswordHash(hash)}, nil
}

func (app *application) Close() {
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
	app.closers = nil
}
