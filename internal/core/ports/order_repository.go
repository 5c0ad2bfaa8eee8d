// Package ports defines the contracts between the order core and its collaborators:
// persistence, the Pricing Service, the product catalog, idempotency keys and event relay.
// Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
)

// ErrOrderAlreadyExists is the cause reported by Add for an id that is already stored.
var ErrOrderAlreadyExists = errors.New("order already exists")

// OrderRepository defines the persistence contract for order aggregates.
//
// Items, total and status of an order are always written together in one statement batch
// of the surrounding transaction; a partial write is never visible.
type OrderRepository interface {
	// Add persists a new order aggregate with version 1.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Load retrieves an order aggregate with its items and stored version.
	// Returns errs.ObjectNotFoundError when no order has the given id.
	Load(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Save persists a mutated order if its stored version still equals expectedVersion,
	// and advances the version by one. expectedVersion is the version the caller loaded,
	// normally aggregate.Version().
	//
	// Returns errs.VersionConflictError when another writer saved first, and
	// errs.ObjectNotFoundError when the order does not exist.
	//
	// Example:
	//
	//	o, _ := repo.Load(ctx, id)
	//	if _, err := o.ConfirmQuote(); err != nil {
	//	    return err
	//	}
	//	if err := repo.Save(ctx, o, o.Version()); errors.Is(err, errs.ErrVersionConflict) {
	//	    // reload and retry
	//	}
	Save(ctx context.Context, aggregate *order.Order, expectedVersion int64) error
}
