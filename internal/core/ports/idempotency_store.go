package ports

import (
	"context"

	"quoteflow/internal/core/domain/model/kernel"
)

// IdempotencyRecord binds a caller token to the payload it was first used with.
type IdempotencyRecord struct {
	OrderID     kernel.UUID
	Key         string
	Fingerprint string
}

// IdempotencyStore keeps caller tokens of applied modifications. Tokens are scoped to
// one order and written in the same transaction as the order save.
type IdempotencyStore interface {
	// Find returns the record for key, and false when the key was never used for the order.
	Find(ctx context.Context, orderID kernel.UUID, key string) (IdempotencyRecord, bool, error)

	// Remember stores a new record.
	Remember(ctx context.Context, record IdempotencyRecord) error
}
