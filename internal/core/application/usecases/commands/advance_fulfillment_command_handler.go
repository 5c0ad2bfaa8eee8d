package commands

import (
	"context"

	"quoteflow/internal/core/domain/model/order"
)

type AdvanceFulfillmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceFulfillmentCommandHandler(uowFactory OrderUoWFactory) AdvanceFulfillmentCommandHandler {
	return AdvanceFulfillmentCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order as saved.
func (h *AdvanceFulfillmentCommandHandler) Handle(ctx context.Context, cmd AdvanceFulfillmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transition(ctx, h.uowFactory, cmd.OrderID(), always((*order.Order).AdvanceFulfillment))
}
