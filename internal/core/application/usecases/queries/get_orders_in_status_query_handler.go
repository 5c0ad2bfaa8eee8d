package queries

import (
	"context"

	"quoteflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersInStatusQueryHandler reads order identifiers straight from the orders table.
//
// Example:
//
//	handler := NewGetOrdersInStatusQueryHandler(db)
//	query, _ := NewGetOrdersInStatusQuery(order.NewInquiry, 0)
//
//	inquiries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list inquiries: %v", err)
//	    return err
//	}
type GetOrdersInStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersInStatusQueryHandler creates a handler for status listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersInStatusQueryHandler(db *gorm.DB) GetOrdersInStatusQueryHandler {
	return GetOrdersInStatusQueryHandler{db: db}
}

// Handle returns at most query.Limit() orders in the requested status, ordered by creation
// time and then by id for a stable order.
func (h GetOrdersInStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersInStatusQuery,
) ([]GetOrdersInStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersInStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			version
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
		LIMIT ?
	`, int(query.Status()), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      uuid.UUID
			version int64
		)

		if err = rows.Scan(&id, &version); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOrdersInStatusQueryResponse{ID: orderID, Version: version})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
