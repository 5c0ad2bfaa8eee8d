package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrBeginPricingCommandIsNotConstructed = errors.New(
	"BeginPricingCommand must be created via NewBeginPricingCommand constructor",
)

// BeginPricingCommand hands a new inquiry over to pricing: NEW_INQUIRY -> PENDING_PRICING.
type BeginPricingCommand struct {
	orderTarget
}

// NewBeginPricingCommand creates the command for the given order.
func NewBeginPricingCommand(orderID kernel.UUID) (BeginPricingCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return BeginPricingCommand{}, err
	}
	return BeginPricingCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginPricingCommand) Validate() error {
	return c.guard.Validate(ErrBeginPricingCommandIsNotConstructed)
}
