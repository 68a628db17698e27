package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/wolfeidau/studiodesk/internal/auth"
	"github.com/wolfeidau/studiodesk/internal/bootstrap"
	"github.com/wolfeidau/studiodesk/internal/logger"
	"github.com/wolfeidau/studiodesk/internal/notify"
	"github.com/wolfeidau/studiodesk/internal/scope"
	"github.com/wolfeidau/studiodesk/internal/server"
	"github.com/wolfeidau/studiodesk/internal/store"
	memorystore "github.com/wolfeidau/studiodesk/internal/store/memory"
	postgresstore "github.com/wolfeidau/studiodesk/internal/store/postgres"
	"github.com/wolfeidau/studiodesk/internal/telemetry"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"STUDIODESK_LISTEN"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"https://localhost" env:"STUDIODESK_CORS_ORIGINS"`

	// Session configuration
	SessionSecret string `help:"secret key for HMAC signing of session tokens" env:"STUDIODESK_SESSION_SECRET"`

	// Development and operational modes
	SeedFile string `help:"YAML seed file applied on startup (development)" default:"" env:"STUDIODESK_SEED_FILE"`
	Metrics  bool   `help:"enable OTLP metrics export" default:"false" env:"STUDIODESK_METRICS"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"STUDIODESK_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"STUDIODESK_POSTGRES_AUTO_MIGRATE"`
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	if c.SessionSecret == "" {
		return errors.New("session signing secret is required (--session-secret or STUDIODESK_SESSION_SECRET)")
	}

	verifier, err := auth.NewTokenVerifier([]byte(c.SessionSecret))
	if err != nil {
		return err
	}

	// Setup telemetry if enabled
	if c.Metrics {
		log.Info().Msg("Metrics export is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "studiodesk-server", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	// Create stores based on store type
	var stores store.Stores

	switch c.StoreType {
	case "postgres":
		if c.PostgresStore.ConnString == "" {
			return errors.New("PostgreSQL connection string is required (--postgres-conn-string or POSTGRES_CONNECTION_STRING)")
		}
		pgStores, err := postgresstore.NewStores(ctx, &postgresstore.Config{
			Pool: &postgresstore.PoolConfig{
				ConnString:      c.PostgresStore.ConnString,
				MaxConns:        c.PostgresStore.MaxConns,
				MinConns:        c.PostgresStore.MinConns,
				MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
				MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
			},
			AutoMigrate: c.PostgresStore.AutoMigrate,
		})
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL stores: %w", err)
		}
		defer pgStores.Close()
		stores = pgStores.Stores
		log.Info().Msg("Using PostgreSQL stores")

	default:
		stores = memorystore.NewStores()
		log.Info().Msg("Using in-memory stores")
	}

	if c.SeedFile != "" {
		seed, err := bootstrap.Load(c.SeedFile)
		if err != nil {
			return err
		}
		if err := bootstrap.Apply(ctx, seed, stores); err != nil {
			return fmt.Errorf("failed to apply seed data: %w", err)
		}
	}

	builder := scope.NewBuilder(stores.Organizations)
	guard := scope.NewGuard(builder, stores.Projects)
	notifier := notify.New(stores.Notifications, stores.Users)

	srv := server.New(stores, guard, notifier, verifier, log)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   c.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           7200,
	})

	httpServer := configureHTTPServer(c.Listen, corsHandler.Handler(srv.Routes()))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", c.Listen).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
