package memory

import (
	"context"

	"quoteflow/internal/core/application/usecases/queries"
)

// OrdersInStatusQueryHandler answers queries.GetOrdersInStatusQuery from a Store.
type OrdersInStatusQueryHandler struct {
	store *Store
}

func NewOrdersInStatusQueryHandler(store *Store) OrdersInStatusQueryHandler {
	return OrdersInStatusQueryHandler{store: store}
}

func (h OrdersInStatusQueryHandler) Handle(
	_ context.Context,
	query queries.GetOrdersInStatusQuery,
) ([]queries.GetOrdersInStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows := h.store.ordersInStatus(query.Status(), query.Limit())
	orders := make([]queries.GetOrdersInStatusQueryResponse, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, queries.GetOrdersInStatusQueryResponse{ID: row.id, Version: row.version})
	}
	return orders, nil
}
