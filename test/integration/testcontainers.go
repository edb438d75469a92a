package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/directory"
	"github.com/prabaj-wq/accessgov/pkg/notify"
	"github.com/prabaj-wq/accessgov/pkg/risk"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/endpoints"
	gormstore "github.com/prabaj-wq/accessgov/pkg/server/store/gorm"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

// TestContext holds the resources an integration run needs: a PostgreSQL
// testcontainer with the schema migrated, and an in-process server wired
// over the gorm stores.
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string
	Server      *server.Server
}

// NewTestContext starts a PostgreSQL container, runs the migrations and
// builds a fully registered server against it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("accessgov_test"),
		tcpostgres.WithUsername("accessgov"),
		tcpostgres.WithPassword("accessgov"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://accessgov:accessgov@%s:%s/accessgov_test?sslmode=disable", host, port.Port())

	m, err := migrate.New("file://"+migrationsDir, connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tc := &TestContext{
		DB:          db,
		Container:   pgContainer,
		DatabaseURL: connStr,
		Server:      newInlineServer(db),
	}
	return tc, nil
}

// newInlineServer wires the governance server in-process, the same way
// govctl server does, but with a fixed two-step approver chain.
func newInlineServer(db *gorm.DB) *server.Server {
	resolver := directory.NewStaticResolver(map[string][]directory.Approver{
		"default": {
			{Identity: "alice", Role: "manager"},
			{Identity: "carol", Role: "security"},
		},
	})

	requests := gormstore.NewRequestsStore(db)
	catalog := gormstore.NewCatalogStore(db)
	violations := gormstore.NewViolationsStore(db)
	metrics := gormstore.NewMetricsStore(db)

	engine := workflow.NewEngine(requests, catalog, resolver, notify.Discard{}, risk.DefaultPolicy)
	aggregator := compliance.NewAggregator(violations, metrics, compliance.DefaultPolicy)

	s := server.NewServer(server.Stores{
		Catalog:    catalog,
		Grants:     gormstore.NewGrantsStore(db),
		Requests:   requests,
		Violations: violations,
		Metrics:    metrics,
		Health:     gormstore.NewHealthStore(db),
	}, engine, aggregator, config.Get(), db, "127.0.0.1", "0")

	endpoints.RegisterAll(s)
	return s
}

// Close tears down the container
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the directory holding go.mod
func findProjectRoot() (string, error) {
	for _, path := range []string{"../..", "..", "."} {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(abs, "go.mod")); err == nil {
			return abs, nil
		}
	}
	return "", fmt.Errorf("go.mod not found relative to the test directory")
}
