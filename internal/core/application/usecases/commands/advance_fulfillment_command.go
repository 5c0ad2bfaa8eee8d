package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrAdvanceFulfillmentCommandIsNotConstructed = errors.New(
	"AdvanceFulfillmentCommand must be created via NewAdvanceFulfillmentCommand constructor",
)

// AdvanceFulfillmentCommand moves a confirmed order one fulfillment step forward,
// up to IN_TRANSIT.
type AdvanceFulfillmentCommand struct {
	orderTarget
}

// NewAdvanceFulfillmentCommand creates the command for the given order.
func NewAdvanceFulfillmentCommand(orderID kernel.UUID) (AdvanceFulfillmentCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return AdvanceFulfillmentCommand{}, err
	}
	return AdvanceFulfillmentCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceFulfillmentCommandIsNotConstructed)
}
