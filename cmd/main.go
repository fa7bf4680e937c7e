// Package main is the artisan marketplace binary. Subcommands serve the API,
// migrate the database and mint tokens for operators.
package main

import (
	"artisan/internal/config"
	"artisan/pkg/logger"
	"artisan/pkg/storage/postgres"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres connects and pings PostgreSQL. The returned func closes the
// pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		SslMode:            cfg.Database.SslMode,
		ApplicationName:    cfg.AppName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}
	if err = pgsql.Ping(ctx); err != nil {
		logger.Fatal(ctx, "could not reach postgres",
			zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DatabaseName), zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres pool...")
		if err := pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres pool", zap.Error(err))
		}
	}
}

// rootCommand loads the config file named by --config into cfg before any
// subcommand runs, so subcommands must only read cfg inside Run.
func rootCommand(cfg *config.Config) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "artisan",
		Short:         "Artisan marketplace backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			logger.Setup(cfg.Environment, cfg.Debug)
			logger.Debug(cmd.Context(), "config loaded", zap.String("path", configPath), zap.String("command", cmd.Name()))

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "config file path")
	cmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
	)

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	err := rootCommand(&config.Config{}).ExecuteContext(ctx)
	stop()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint: forbidigo
		os.Exit(1) //nolint: gocritic
	}
}
