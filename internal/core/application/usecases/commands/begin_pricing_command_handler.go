package commands

import (
	"context"

	"quoteflow/internal/core/domain/model/order"
)

type BeginPricingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewBeginPricingCommandHandler(uowFactory OrderUoWFactory) BeginPricingCommandHandler {
	return BeginPricingCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order as saved.
func (h *BeginPricingCommandHandler) Handle(ctx context.Context, cmd BeginPricingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transition(ctx, h.uowFactory, cmd.OrderID(), always((*order.Order).BeginPricing))
}
