package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrCompletePricingCommandIsNotConstructed = errors.New(
	"CompletePricingCommand must be created via NewCompletePricingCommand constructor",
)

// CompletePricingCommand asks the Pricing Service for the current prices of an order's
// items and applies them: PENDING_PRICING -> WAITING_CLIENT_APPROVAL.
type CompletePricingCommand struct {
	orderTarget
}

// NewCompletePricingCommand creates the command for the given order.
func NewCompletePricingCommand(orderID kernel.UUID) (CompletePricingCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return CompletePricingCommand{}, err
	}
	return CompletePricingCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePricingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePricingCommandIsNotConstructed)
}
