package commands

import (
	"context"

	"quoteflow/internal/core/domain/model/order"
)

type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmDeliveryCommandHandler(uowFactory OrderUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order as saved.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transition(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).ConfirmDelivery)
}
