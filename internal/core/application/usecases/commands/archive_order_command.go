package commands

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand closes a delivered order. CLOSED is terminal; orders are never deleted.
type ArchiveOrderCommand struct {
	orderTarget
}

// NewArchiveOrderCommand creates the command for the given order.
func NewArchiveOrderCommand(orderID kernel.UUID) (ArchiveOrderCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return ArchiveOrderCommand{}, err
	}
	return ArchiveOrderCommand{orderTarget: target}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}
