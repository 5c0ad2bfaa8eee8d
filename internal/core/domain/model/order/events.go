package order

import (
	"time"

	"quoteflow/internal/core/domain/model/kernel"
)

// StatusChanged is recorded by the aggregate for every applied transition and drained into
// the outbox by the unit of work in the same transaction as the order itself.
type StatusChanged struct {
	EventID    kernel.UUID
	OrderID    kernel.UUID
	Action     Action
	From       Status
	To         Status
	Version    int64
	OccurredAt time.Time
}
