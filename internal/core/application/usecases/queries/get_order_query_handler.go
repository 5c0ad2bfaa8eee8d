package queries

import (
	"context"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
)

// OrderLoader reads whole order aggregates. ports.OrderRepository satisfies it.
type OrderLoader interface {
	Load(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderQueryHandler returns orders through the repository, so the read goes through the
// same invariant checks as a command would.
type GetOrderQueryHandler struct {
	orders OrderLoader
}

func NewGetOrderQueryHandler(orders OrderLoader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns errs.ObjectNotFoundError for an unknown id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Load(ctx, query.OrderID())
}
