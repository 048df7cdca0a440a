package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	httpapi "github.com/aussiebroadwan/handoff/internal/handoff/http"
	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/store/drivers/sqlite"
	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/aussiebroadwan/handoff/pkg/passgen"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the handoff service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	codec     *cryptox.Codec
	generator *passgen.Generator
	keys      *jwtx.KeySet
	verifier  jwtx.Verifier
	refresher *jwtx.Refresher // nil when keys come from a file
	auditSink audit.Sink

	// Services
	organizationService *service.OrganizationService
	systemService       *service.SystemService
	credentialService   *service.CredentialService
	handoffService      *service.HandoffService
	sweeper             *service.TokenSweeper

	// Background work
	stopBackground context.CancelFunc
	background     sync.WaitGroup

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "handoff-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := InitDataKey(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.codec = codec

	generator, err := passgen.NewGenerator(passgen.Config{
		Length: cfg.PasswordLength,
		Preset: passgen.Preset(cfg.PasswordPreset),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid password defaults: %w", err)
	}
	app.generator = generator

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, verifier, refresher, err := InitVerifier(context.Background(), cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys, app.verifier, app.refresher = keys, verifier, refresher

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	bgCtx, cancel := context.WithCancel(slogx.WithContext(context.Background(), app.logger))
	app.stopBackground = cancel

	app.goBackground(func() { app.sweeper.Run(bgCtx) })
	if app.refresher != nil {
		app.goBackground(func() { app.refresher.Run(bgCtx) })
	}

	app.logger.Info("handoff service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down handoff service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.stopBackground != nil {
		app.stopBackground()
	}
	app.background.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("handoff service stopped")
	return nil
}

func (app *Application) goBackground(fn func()) {
	app.background.Add(1)
	go func() {
		defer app.background.Done()
		fn()
	}()
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.auditSink = &audit.StoreSink{Store: app.db}

	app.organizationService = &service.OrganizationService{
		Store: app.db,
		Audit: app.auditSink,
	}
	app.systemService = &service.SystemService{
		Store: app.db,
		Audit: app.auditSink,
	}
	app.credentialService = &service.CredentialService{
		Store:             app.db,
		Codec:             app.codec,
		Generator:         app.generator,
		Audit:             app.auditSink,
		AllowManualSecret: app.cfg.AllowManualSecret,
	}
	app.handoffService = &service.HandoffService{
		Store:   app.db,
		Codec:   app.codec,
		Audit:   app.auditSink,
		TTL:     app.cfg.TokenTTL,
		BaseURL: app.cfg.BaseURL,
		QRSize:  app.cfg.QRSize,
	}

	app.sweeper = &service.TokenSweeper{
		Store:    app.db,
		Interval: app.cfg.SweepInterval,
	}

	if app.cfg.AllowManualSecret {
		app.logger.Warn("manual secrets enabled; caller-supplied secrets bypass the password policy")
	}
	app.logger.Info("handoff tokens configured",
		"ttl", app.cfg.TokenTTL,
		"base_url", app.cfg.BaseURL,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.cfg.RateLimits,
		app.logger,
	)

	// Wire services to router
	router.OrganizationService = app.organizationService
	router.SystemService = app.systemService
	router.CredentialService = app.credentialService
	router.HandoffService = app.handoffService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
