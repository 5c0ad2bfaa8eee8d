package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes one order transition: the order save, the idempotency record and the
// outbox rows of the recorded status changes become durable together on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit flushes tracked events to the outbox and commits.
	// It fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback discards staged writes. Calling it after Commit returns an error that deferred
	// callers ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	IdempotencyStore() IdempotencyStore
}
