package memory

import (
	"context"
	"errors"
	"fmt"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWorkFactory implements ports.UnitOfWorkFactory over a Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// staged is an order write waiting for Commit.
type staged struct {
	id        kernel.UUID
	state     snapshot
	base      int64 // stored version the write was based on, 0 for a new order
	aggregate *order.Order
}

// UnitOfWork stages writes and applies them to the Store on Commit. Outside Begin every
// write is applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool
	orders []staged
	keys   []ports.IdempotencyRecord
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit re-checks every staged version under the store lock, so a competing commit made
// after Load still surfaces as a version conflict.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	defer uow.reset()
	return uow.apply()
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) IdempotencyStore() ports.IdempotencyStore {
	return &idempotencyStore{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.orders = nil
	uow.keys = nil
}

func (uow *UnitOfWork) apply() error {
	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, write := range uow.orders {
		stored, exists := s.orders[write.id]
		switch {
		case write.base == 0 && exists:
			return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%w: %s", ports.ErrOrderAlreadyExists, write.id))
		case write.base != 0 && !exists:
			return errs.NewObjectNotFoundError("order", write.id.String())
		case write.base != 0 && stored.version != write.base:
			return errs.NewVersionConflictError("order", write.id.String(), write.base)
		}
	}

	for _, write := range uow.orders {
		s.orders[write.id] = write.state
		if err := s.appendEvents(write.aggregate.DomainEvents()); err != nil {
			return err
		}
		write.aggregate.ClearDomainEvents()
	}
	for _, record := range uow.keys {
		s.keys[keyID{orderID: record.OrderID, key: record.Key}] = record
	}
	return nil
}

// write stages one order, or applies it at once outside a transaction.
func (uow *UnitOfWork) write(w staged) error {
	if !uow.active {
		single := &UnitOfWork{store: uow.store, orders: []staged{w}}
		return single.apply()
	}

	for i := range uow.orders {
		if uow.orders[i].id.IsEqual(w.id) {
			w.base = uow.orders[i].base
			uow.orders[i] = w
			return nil
		}
	}
	uow.orders = append(uow.orders, w)
	return nil
}

// current returns the latest state visible to this unit of work.
func (uow *UnitOfWork) current(id kernel.UUID) (snapshot, bool) {
	for _, w := range uow.orders {
		if w.id.IsEqual(id) {
			return w.state, true
		}
	}

	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	stored, ok := uow.store.orders[id]
	return stored, ok
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.current(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%w: %s", ports.ErrOrderAlreadyExists, aggregate.ID()))
	}

	state := snapshotOf(aggregate)
	state.version = 1
	if err := r.uow.write(staged{id: aggregate.ID(), state: state, aggregate: aggregate}); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return nil
}

func (r *orderRepository) Load(_ context.Context, id kernel.UUID) (*order.Order, error) {
	state, ok := r.uow.current(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return state.restore(id)
}

func (r *orderRepository) Save(_ context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, ok := r.uow.current(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if current.version != expectedVersion {
		return errs.NewVersionConflictError("order", aggregate.ID().String(), expectedVersion)
	}

	state := snapshotOf(aggregate)
	state.version = expectedVersion + 1
	if err := r.uow.write(staged{id: aggregate.ID(), state: state, base: expectedVersion, aggregate: aggregate}); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return nil
}

type idempotencyStore struct {
	uow *UnitOfWork
}

func (s *idempotencyStore) Find(_ context.Context, orderID kernel.UUID, key string) (ports.IdempotencyRecord, bool, error) {
	for _, record := range s.uow.keys {
		if record.OrderID.IsEqual(orderID) && record.Key == key {
			return record, true, nil
		}
	}

	s.uow.store.mu.RLock()
	defer s.uow.store.mu.RUnlock()
	record, ok := s.uow.store.keys[keyID{orderID: orderID, key: key}]
	return record, ok, nil
}

func (s *idempotencyStore) Remember(_ context.Context, record ports.IdempotencyRecord) error {
	if err := record.OrderID.Validate(); err != nil {
		return err
	}

	if !s.uow.active {
		s.uow.store.mu.Lock()
		defer s.uow.store.mu.Unlock()
		s.uow.store.keys[keyID{orderID: record.OrderID, key: record.Key}] = record
		return nil
	}

	s.uow.keys = append(s.uow.keys, record)
	return nil
}
