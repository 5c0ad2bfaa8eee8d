// Package queries contains read operations. Query handlers never mutate state and may read
// storage directly, bypassing the aggregates.
package queries

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/guard"
)

const defaultOrdersInStatusLimit = 100

var (
	ErrGetOrdersInStatusQueryIsNotConstructed = errors.New(
		"GetOrdersInStatusQuery must be created via NewGetOrdersInStatusQuery constructor",
	)
)

// GetOrdersInStatusQuery lists orders waiting in one status, oldest first.
// Background jobs use it to find inquiries to hand over to pricing.
//
// Example:
//
//	query, _ := NewGetOrdersInStatusQuery(order.PendingPricing, 50)
//	handler := NewGetOrdersInStatusQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders pending pricing: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("Order %s (version %d)\n", o.ID, o.Version)
//	}
type GetOrdersInStatusQuery struct {
	status order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewGetOrdersInStatusQuery creates the query. A limit of zero or less uses the default of 100.
func NewGetOrdersInStatusQuery(status order.Status, limit int) (GetOrdersInStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersInStatusQuery{}, err
	}
	if limit <= 0 {
		limit = defaultOrdersInStatusLimit
	}

	return GetOrdersInStatusQuery{status: status, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersInStatusQueryIsNotConstructed if validation fails.
func (q GetOrdersInStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersInStatusQueryIsNotConstructed)
}

func (q GetOrdersInStatusQuery) Status() order.Status {
	return q.status
}

func (q GetOrdersInStatusQuery) Limit() int {
	return q.limit
}

// GetOrdersInStatusQueryResponse identifies one order of the listing.
type GetOrdersInStatusQueryResponse struct {
	ID      kernel.UUID
	Version int64
}
