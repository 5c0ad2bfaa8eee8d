package commands

import (
	"errors"
	"strings"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/pkg/guard"
)

var ErrCreateInquiryCommandIsNotConstructed = errors.New(
	"CreateInquiryCommand must be created via NewCreateInquiryCommand constructor",
)

// CreateInquiryCommand represents a client's first inquiry, which creates the order.
//
// Example:
//
//	cmd, err := NewCreateInquiryCommand(kernel.NewUUID(), "client-7", []order.QuoteLine{
//	    {ProductRef: "A", Quantity: 5},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid inquiry: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateInquiryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	clientRef string
	lines     []order.QuoteLine

	guard guard.ConstructorGuard
}

// NewCreateInquiryCommand validates the identifier, client reference and requested lines.
// Item level rules (positive quantities, unique products) are enforced by the order itself.
func NewCreateInquiryCommand(orderID kernel.UUID, clientRef string, lines []order.QuoteLine) (CreateInquiryCommand, error) {
	cmd := CreateInquiryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientRef(clientRef),
		cmd.setLines(lines),
	); err != nil {
		return CreateInquiryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateInquiryCommand) Validate() error {
	return c.guard.Validate(ErrCreateInquiryCommandIsNotConstructed)
}

func (c CreateInquiryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateInquiryCommand) ClientRef() string {
	return c.clientRef
}

// Lines returns a copy of the requested lines.
func (c CreateInquiryCommand) Lines() []order.QuoteLine {
	lines := make([]order.QuoteLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateInquiryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateInquiryCommand) setClientRef(clientRef string) error {
	clientRef = strings.TrimSpace(clientRef)
	if clientRef == "" {
		return errs.NewValueIsRequiredError("clientRef")
	}

	c.clientRef = clientRef
	return nil
}

func (c *CreateInquiryCommand) setLines(lines []order.QuoteLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.lines = make([]order.QuoteLine, len(lines))
	copy(c.lines, lines)
	return nil
}
