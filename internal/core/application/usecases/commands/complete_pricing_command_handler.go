package commands

import (
	"context"
	"errors"

	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/domain/services"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"
)

// CompletePricingCommandHandler prices an order through the Pricing Service.
//
// The order is read and its status checked before the collaborator is called, so an order
// that is not pending pricing never costs a pricing request. The call runs with no
// transaction open. The result is then applied to a fresh load inside the unit of work:
// if the order changed in between, the handler fails with a version conflict and the caller
// retries with the new item list.
//
// Example:
//
//	handler := NewCompletePricingCommandHandler(uowFactory, pricingClient)
//	cmd, _ := NewCompletePricingCommand(orderID)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrCollaboratorFailure) {
//	    // pricing unavailable, order unchanged
//	}
type CompletePricingCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    ports.PricingService
	pricer     services.QuotePricer
}

// NewCompletePricingCommandHandler creates a handler bound to a Pricing Service client.
func NewCompletePricingCommandHandler(uowFactory OrderUoWFactory, pricing ports.PricingService) CompletePricingCommandHandler {
	return CompletePricingCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		pricer:     services.NewQuotePricer(),
	}
}

// Handle returns the priced order.
func (h *CompletePricingCommandHandler) Handle(ctx context.Context, cmd CompletePricingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.uowFactory.Create().OrderRepository().Load(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.pricer.Ready(snapshot); err != nil {
		return nil, err
	}

	quote, err := h.pricing.Reprice(ctx, snapshot.Lines())
	if err != nil {
		if !errors.Is(err, errs.ErrCollaboratorFailure) {
			err = errs.NewCollaboratorFailureErrorWithCause("pricing service", err)
		}
		return nil, err
	}

	return transition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		if o.Version() != snapshot.Version() {
			return false, errs.NewVersionConflictError("order", o.ID(), snapshot.Version())
		}
		if err := h.pricer.Apply(o, quote); err != nil {
			return false, err
		}
		return true, nil
	})
}
