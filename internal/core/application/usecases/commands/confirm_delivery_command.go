package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records that the client received the goods: IN_TRANSIT -> DELIVERED.
// A retry on a delivered order succeeds without saving.
type ConfirmDeliveryCommand struct {
	orderTarget
}

// NewConfirmDeliveryCommand creates the command for the given order.
func NewConfirmDeliveryCommand(orderID kernel.UUID) (ConfirmDeliveryCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}
