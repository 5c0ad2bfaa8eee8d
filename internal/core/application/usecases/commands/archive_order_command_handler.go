package commands

import (
	"context"

	"quoteflow/internal/core/domain/model/order"
)

type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewArchiveOrderCommandHandler(uowFactory OrderUoWFactory) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order as saved.
func (h *ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transition(ctx, h.uowFactory, cmd.OrderID(), always((*order.Order).Archive))
}
