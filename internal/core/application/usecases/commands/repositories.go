// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"quoteflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure an order change and its side records commit together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// IdempotencyStoreFactory provides access to idempotency keys within a transaction.
	IdempotencyStoreFactory interface {
		IdempotencyStore() ports.IdempotencyStore
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ModifyOrderUoW manages transactions that save an order together with the
	// idempotency key of the request that changed it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Load(ctx, id)
	//   // ... mutate o
	//   err = uow.OrderRepository().Save(ctx, o, o.Version())
	//   err = uow.IdempotencyStore().Remember(ctx, record)
	//
	//   err = uow.Commit(ctx)
	ModifyOrderUoW interface {
		TxManager
		OrderRepoFactory
		IdempotencyStoreFactory
	}

	// ModifyOrderUoWFactory creates new unit of work instances for quote modifications.
	ModifyOrderUoWFactory interface {
		Create() ModifyOrderUoW
	}
)
