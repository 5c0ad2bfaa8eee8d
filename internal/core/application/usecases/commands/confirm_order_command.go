package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand accepts the priced quote: WAITING_CLIENT_APPROVAL -> ORDER_CONFIRMED.
//
// Confirming an order that is already ORDER_CONFIRMED succeeds without saving, so a
// retried request returns the same result.
type ConfirmOrderCommand struct {
	orderTarget
}

// NewConfirmOrderCommand creates the command for the given order.
func NewConfirmOrderCommand(orderID kernel.UUID) (ConfirmOrderCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}
