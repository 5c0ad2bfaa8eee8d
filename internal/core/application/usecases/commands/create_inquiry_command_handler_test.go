package commands_test

import (
	"errors"
	"testing"

	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inquiry(t *testing.T) commands.CreateInquiryCommand {
	t.Helper()
	cmd, err := commands.NewCreateInquiryCommand(kernel.NewUUID(), "client-7", []order.QuoteLine{
		{ProductRef: "A", Quantity: 5},
		{ProductRef: "B", Quantity: 2},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateInquiryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := inquiry(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateInquiryCommandHandler(factory)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), o.ID())
	assert.Equal(t, order.NewInquiry, o.Status())
	assert.Equal(t, cmd.Lines(), o.Lines())
	assert.True(t, o.TotalOrderValue().IsPending())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateInquiryCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateInquiryCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.CreateInquiryCommand{})

	require.ErrorIs(t, err, commands.ErrCreateInquiryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateInquiryCommandHandler_Handle_InvalidItems(t *testing.T) {
	cmd, err := commands.NewCreateInquiryCommand(kernel.NewUUID(), "client-7", []order.QuoteLine{
		{ProductRef: "A", Quantity: 0},
	})
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateInquiryCommandHandler(factory)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateInquiryCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateInquiryCommandHandler(factory)
	_, err := h.Handle(ctx, inquiry(t))

	require.EqualError(t, err, "begin error")
}

func TestCreateInquiryCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateInquiryCommandHandler(factory)
	o, err := h.Handle(ctx, inquiry(t))

	require.EqualError(t, err, "add error")
	assert.Nil(t, o)
	uow.AssertNotCalled(t, "Commit", ctx)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateInquiryCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateInquiryCommandHandler(factory)
	_, err := h.Handle(ctx, inquiry(t))

	require.EqualError(t, err, "commit error")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
