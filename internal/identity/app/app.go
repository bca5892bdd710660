package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/usermgmt/internal/identity/http"
	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/cryptox"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...".
var BuildVersion = "1.0.0"

// Application wires configuration, store, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HMAC

	accountService *service.AccountService
	profileService *service.ProfileService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "usermgmt",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
}

// New validates cfg, connects the store, applies migrations and builds the
// HTTP server. It fails without serving anything when the signing secret or
// the store is unusable.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg, logger: logger}

	secret, err := ResolveSecret(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.tokens, err = jwtx.NewHMAC(secret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("listen %s: %w", app.server.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("usermgmt starting",
		"addr", ln.Addr().String(),
		"version", BuildVersion,
		"driver", app.db.Name(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutdown requested")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// Shutdown drains in-flight requests for up to ShutdownGracePeriod and closes
// the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down usermgmt...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("usermgmt stopped")
	return nil
}

func (app *Application) initStore(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg, app.logger)
	if err != nil {
		return err
	}

	migrateCtx, cancel := context.WithTimeout(ctx, app.cfg.Store.Timeout)
	defer cancel()
	if err := db.ApplyMigrations(migrateCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply store migrations: %w", err)
	}

	app.db = db
	app.logger.Info("store migrations applied", "driver", db.Name())
	return nil
}

func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:        app.db,
		Hasher:       &cryptox.BcryptHasher{Cost: app.cfg.BcryptCost},
		Tokens:       app.tokens,
		StoreTimeout: app.cfg.Store.Timeout,
	}
	app.profileService = &service.ProfileService{
		Store:        app.db,
		StoreTimeout: app.cfg.Store.Timeout,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.cfg.CORSConfig(),
		app.logger,
	)
	router.AccountService = app.accountService
	router.ProfileService = app.profileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// Migrate connects to the configured store and applies migrations without
// starting the server.
func Migrate(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.ApplyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply store migrations: %w", err)
	}
	logger.Info("store migrations applied", "driver", db.Name(), "database", db.Database())
	return nil
}
