package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/internal/server"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/postgres"
	"github.com/rosterly/shiftroster/pkg/snapshot"
	"github.com/rosterly/shiftroster/pkg/utils/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var env string
	flag.StringVar(&env, "env", "", "Environment (test, prod, etc.)")
	flag.Parse()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Loading configuration")
	var cfg *config.Config
	if env != "" {
		cfg, err = config.LoadWithEnv(env)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	logger.Info("Running migrations")
	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cache, err := snapshot.Open(cfg.SnapshotPath)
	if err != nil {
		logger.Warn("failed to open snapshot cache, continuing without", zap.Error(err))
		cache = nil
	} else {
		defer cache.Close()
	}

	registry := store.NewRegistry(database, cache, logger)
	registry.LoadPersisted()

	logger.Info("Loading domain data")
	if err := registry.Init(ctx); err != nil {
		return fmt.Errorf("failed to load domain data: %w", err)
	}

	srv, err := server.New(cfg, registry, logger)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	return srv.Run(ctx)
}
