package commands

import (
	"context"
	"time"

	"quoteflow/internal/core/domain/model/order"
)

// CreateInquiryCommandHandler creates an order in NEW_INQUIRY status with every item
// pending pricing.
type CreateInquiryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateInquiryCommandHandler creates a handler for client inquiries.
func NewCreateInquiryCommandHandler(uowFactory OrderUoWFactory) CreateInquiryCommandHandler {
	return CreateInquiryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle creates and persists the order. The returned order carries version 1.
func (h *CreateInquiryCommandHandler) Handle(ctx context.Context, cmd CreateInquiryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.ClientRef(), cmd.Lines(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
