// Package pgtest starts a disposable PostgreSQL for integration tests and applies the
// service migrations to it.
package pgtest

import (
	"context"
	"time"

	"quoteflow/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated database inside a running container.
type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, applies every migration and opens a GORM connection.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	database := &Database{Container: container}
	if database.DSN, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
		return database, err
	}

	if err = migrations.Up(database.DSN); err != nil {
		return database, err
	}

	database.DB, err = gorm.Open(postgresdriver.Open(database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	return database, err
}

// Reset empties the order, idempotency and outbox tables. The seeded catalog is kept.
func (d *Database) Reset() error {
	return d.DB.Exec("TRUNCATE TABLE orders, order_items, idempotency_keys, outbox RESTART IDENTITY CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
