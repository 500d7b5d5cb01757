// Package main implements the tasks-api binary: an HTTP service for creating,
// listing, updating and deleting tasks, plus a migrate command for the SQL
// store backends.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the tasks-api command tree.
func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "Task management HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "",
		"path to a config file (default: ./config.yaml if present)")

	loadConfig := func() (*config.Config, error) {
		load := config.Load
		if configFile != "" {
			load = func() (*config.Config, error) { return config.LoadFile(configFile) }
		}
		cfg, err := load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return runServer(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:       "migrate [up|down|status|version]",
			Short:     "Run database migrations against the configured SQL store",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{migrate.CommandUp, migrate.CommandDown, migrate.CommandStatus, migrate.CommandVersion},
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return runMigrations(cmd.Context(), cfg.Store, args[0], logger.Setup(cfg.Server))
			},
		},
	)

	return root
}

// runServer wires the application and serves until ctx is canceled.
func runServer(ctx context.Context, cfg *config.Config) error {
	log := logger.Setup(cfg.Server)
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
