package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aqtareen/Taqreeb/internal/api"
	"github.com/aqtareen/Taqreeb/internal/config"
	"github.com/aqtareen/Taqreeb/internal/domain/accounts"
	"github.com/aqtareen/Taqreeb/internal/domain/events"
	"github.com/aqtareen/Taqreeb/internal/domain/tasks"
	"github.com/aqtareen/Taqreeb/internal/domain/teams"
	"github.com/aqtareen/Taqreeb/internal/domain/vendors"
	"github.com/aqtareen/Taqreeb/internal/domain/venues"
	"github.com/aqtareen/Taqreeb/internal/metrics"
	"github.com/aqtareen/Taqreeb/internal/storage/postgres"
	"github.com/aqtareen/Taqreeb/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	collectInterval = 15 * time.Second
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

func newServeCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the Taqreeb HTTP server",
		Long: `Start the Taqreeb HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Connect to PostgreSQL and create any missing tables
- Serve the JSON API, /health and /metrics
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug

  # Start with custom config file
  server serve --config /etc/taqreeb/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	serve.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serve.Flags().IntVar(&serverPort, "port", 0, "server port (default: 5000)")
	return serve
}

// serverConfig loads configuration and applies the serve flags.
func serverConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	return cfg, nil
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Str("environment", cfg.Environment).Msg("starting Taqreeb server")

	metrics.Init(Version, GitCommit, BuildDate)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing setup failed: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	gw, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	deps, err := buildDeps(cfg, logger, gw)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(deps),
		ReadTimeout:       10 * time.Second, // Total time to read request
		WriteTimeout:      30 * time.Second, // Total time to write response
		ReadHeaderTimeout: 5 * time.Second,  // Time to read headers
		MaxHeaderBytes:    1 << 20,          // 1 MB max header size
	}

	dbCollector := metrics.NewDBCollector(gw.Pool())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dbCollector.Start(gctx, collectInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openDatabase connects to PostgreSQL and creates any missing tables.
func openDatabase(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*postgres.Gateway, error) {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	gw, err := postgres.Open(startCtx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := gw.EnsureSchema(startCtx); err != nil {
		gw.Close()
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}
	return gw, nil
}

func buildDeps(cfg config.Config, logger zerolog.Logger, gw *postgres.Gateway) (api.Deps, error) {
	repo, err := postgres.NewRepository(gw)
	if err != nil {
		return api.Deps{}, fmt.Errorf("repository: %w", err)
	}

	accountOpts := []accounts.Option{accounts.WithBcryptCost(cfg.Accounts.BcryptCost)}
	if cfg.Accounts.TeamPickSeed != 0 {
		accountOpts = append(accountOpts, accounts.WithSeed(cfg.Accounts.TeamPickSeed))
	}

	return api.Deps{
		Config:    cfg,
		Logger:    logger,
		DB:        gw,
		Auth:      accounts.NewService(repo.Accounts(), logger, accountOpts...),
		Events:    events.NewService(repo.Events(), logger),
		Venues:    venues.NewService(repo.Venues(), logger),
		Vendors:   vendors.NewService(repo.Vendors(), logger),
		Teams:     teams.NewService(repo.Teams(), logger),
		Tasks:     tasks.NewService(repo.Tasks(), logger),
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}, nil
}
