package commands

import (
	"context"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/guard"
)

// orderTarget is the part shared by commands that act on one existing order.
type orderTarget struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func newOrderTarget(orderID kernel.UUID) (orderTarget, error) {
	if err := orderID.Validate(); err != nil {
		return orderTarget{}, err
	}
	return orderTarget{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the identifier of the order the command acts on.
func (t orderTarget) OrderID() kernel.UUID {
	return t.orderID
}

// mutation applies one action to a loaded order. It reports false when the order is already
// in the requested state and nothing has to be saved.
type mutation func(o *order.Order) (bool, error)

// transition loads an order, applies mutate and saves the result with the loaded version,
// all inside one unit of work. Nothing is saved when mutate fails.
func transition(ctx context.Context, uowFactory OrderUoWFactory, orderID kernel.UUID, mutate mutation) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(o)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = orderRepo.Save(ctx, o, o.Version()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// always adapts an action without an idempotent shortcut to a mutation,
// e.g. always((*order.Order).Archive).
func always(action func(o *order.Order) error) mutation {
	return func(o *order.Order) (bool, error) {
		if err := action(o); err != nil {
			return false, err
		}
		return true, nil
	}
}
