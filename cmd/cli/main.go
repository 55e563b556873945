package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/cmd/cli/commands"
	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/postgres"
	"github.com/rosterly/shiftroster/pkg/snapshot"
	"github.com/rosterly/shiftroster/pkg/utils/logging"
)

var (
	env   string
	app   *commands.AppContext
	cache *snapshot.Cache
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftroster",
		Short: "Shift Roster CLI - Manage people, leave and shift rosters",
		Long:  `A CLI tool for managing people, roles, groups, leave requests, shift templates and rosters.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cache != nil {
				cache.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (test, prod, etc.)")

	rootCmd.AddCommand(
		commands.ListPeopleCmd(appRef()),
		commands.AddPersonCmd(appRef()),
		commands.AddRoleCmd(appRef()),
		commands.ListRolesCmd(appRef()),
		commands.RequestLeaveCmd(appRef()),
		commands.ApproveLeaveCmd(appRef()),
		commands.RejectLeaveCmd(appRef()),
		commands.ListLeavesCmd(appRef()),
		commands.AddTemplateCmd(appRef()),
		commands.ListTemplatesCmd(appRef()),
		commands.CreateRosterCmd(appRef()),
		commands.GenerateShiftsCmd(appRef()),
		commands.ViewRosterCmd(appRef()),
		commands.AssignPersonCmd(appRef()),
		commands.RemovePersonCmd(appRef()),
		commands.ListEligibleCmd(appRef()),
		commands.StatsCmd(appRef()),
		commands.InteractiveCmd(appRef()),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext. Commands capture the pointer at
// registration time; initApp fills it in before any RunE fires.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database and the domain stores
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	if env != "" {
		app.Cfg, err = config.LoadWithEnv(env)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = database

	app.Logger.Info("Running migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cache, err = snapshot.Open(app.Cfg.SnapshotPath)
	if err != nil {
		app.Logger.Warn("failed to open snapshot cache, continuing without", zap.Error(err))
		cache = nil
	}

	app.Registry = store.NewRegistry(database, cache, app.Logger)
	app.Registry.LoadPersisted()

	app.Logger.Info("Loading domain data")
	if err := app.Registry.Init(app.Ctx); err != nil {
		return fmt.Errorf("failed to load domain data: %w", err)
	}
	app.Logger.Info("Application initialized successfully")

	return nil
}
