package postgres_test

import (
	root "artisan"
	"artisan/pkg/storage/postgres"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	adminDB      = "postgres"
)

// one container per package run, one database per test
var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerHost string
	containerPort int
	containerErr  error
	databaseSeq   atomic.Int64
)

func TestMain(m *testing.M) {
	code := m.Run()
	if container != nil {
		_ = container.Terminate(context.Background())
	}
	os.Exit(code)
}

func startContainer(ctx context.Context) {
	container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       adminDB,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if containerErr != nil {
		containerErr = fmt.Errorf("could not start postgres container: %w", containerErr)

		return
	}

	if containerHost, containerErr = container.Host(ctx); containerErr != nil {
		return
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		containerErr = err

		return
	}
	containerPort = port.Int()
}

func connect(ctx context.Context, database string) (*postgres.PgSQL, error) {
	return postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               containerHost,
		Port:               containerPort,
		Database:           database,
		SslMode:            "disable",
		ApplicationName:    "artisan-test",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 1,
	})
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("could not apply river migrations: %w", err)
	}

	return nil
}

// setupTestDB returns storage bound to a freshly migrated database.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	containerOnce.Do(func() { startContainer(ctx) })
	require.NoError(t, containerErr)

	admin, err := connect(ctx, adminDB)
	require.NoError(t, err)
	defer func() { _ = admin.Close() }()

	name := fmt.Sprintf("artisan_%d", databaseSeq.Add(1))
	_, err = admin.DB.ExecContext(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)

	pg, err := connect(ctx, name)
	require.NoError(t, err)
	require.NoError(t, migrate(ctx, pg.DB.(*sql.DB)))

	return pg, func() {
		_ = pg.Close()
	}
}

func TestPgSQL_Ping(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	require.NoError(t, pg.Ping(t.Context()))

	var app string
	require.NoError(t, pg.DB.QueryRowContext(t.Context(), "SHOW application_name").Scan(&app))
	require.Equal(t, "artisan-test", app)
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	pg, err := postgres.New(ctx, postgres.Options{
		Username: "nobody",
		Password: "p@ss/word",
		Host:     "127.0.0.1",
		Port:     1,
		Database: "missing",
		SslMode:  "disable",
	})
	// the pool connects lazily so New succeeds and Ping reports the failure
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })
	require.Error(t, pg.Ping(ctx))
}
