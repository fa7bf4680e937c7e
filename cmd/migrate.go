package main

import (
	root "artisan"
	"artisan/internal/config"
	"artisan/pkg/logger"
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

// migrateCommand constructs the 'migrate' subcommand. It brings the schema
// and the River job tables up to date, or rolls the schema back with
// --down-to.
func migrateCommand(cfg *config.Config) *cobra.Command {
	var (
		status bool
		downTo int64
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the artisan schema and the job queue tables",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			pgsql, closePgsql := getPostgres(ctx, cfg)
			defer closePgsql()

			db, ok := pgsql.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "migrations need a non transactional handle")
			}

			if err := setupGoose(); err != nil {
				logger.Fatal(ctx, "could not configure goose", zap.Error(err))
			}

			switch {
			case status:
				if err := goose.Status(db, migrationsDir); err != nil {
					logger.Fatal(ctx, "could not read migration status", zap.Error(err))
				}
			case downTo >= 0:
				if err := goose.DownTo(db, migrationsDir, downTo); err != nil {
					logger.Fatal(ctx, "could not roll back schema", zap.Int64("version", downTo), zap.Error(err))
				}
				logger.Info(ctx, "schema rolled back", zap.Int64("version", downTo))
			default:
				if err := migrateSchema(ctx, db); err != nil {
					logger.Fatal(ctx, "could not migrate schema", zap.Error(err))
				}
				if err := migrateQueue(ctx, db); err != nil {
					logger.Fatal(ctx, "could not migrate job queue", zap.Error(err))
				}
			}
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "print applied and pending schema migrations")
	cmd.Flags().Int64Var(&downTo, "down-to", -1, "roll the schema back to this version")

	return cmd
}

func setupGoose() error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	return nil
}

func migrateSchema(ctx context.Context, db *sql.DB) error {
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("could not read schema version: %w", err)
	}
	logger.Info(ctx, "schema is up to date", zap.Int64("version", version))

	return nil
}

// migrateQueue applies River's own migrations. They are versioned separately
// from the schema and only ever move forward here.
func migrateQueue(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return fmt.Errorf("could not apply river migrations: %w", err)
	}

	applied := make([]int, 0, len(res.Versions))
	for _, v := range res.Versions {
		applied = append(applied, v.Version)
	}
	logger.Info(ctx, "job queue is up to date", zap.Ints("applied", applied))

	return nil
}
