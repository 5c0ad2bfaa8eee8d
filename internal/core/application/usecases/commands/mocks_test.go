package commands_test

import (
	"context"
	"testing"
	"time"

	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Load(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order, expectedVersion int64) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Find(ctx context.Context, orderID kernel.UUID, key string) (ports.IdempotencyRecord, bool, error) {
	args := m.Called(ctx, orderID, key)
	return args.Get(0).(ports.IdempotencyRecord), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Remember(ctx context.Context, record ports.IdempotencyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) IdempotencyStore() ports.IdempotencyStore {
	args := m.Called()
	return args.Get(0).(ports.IdempotencyStore)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockModifyOrderUoWFactory struct{ mock.Mock }

func (m *MockModifyOrderUoWFactory) Create() commands.ModifyOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.ModifyOrderUoW)
}

type MockPricingService struct{ mock.Mock }

func (m *MockPricingService) Reprice(ctx context.Context, lines []order.QuoteLine) (ports.PriceQuote, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(ports.PriceQuote), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

// orderIn restores an order in the given status with items A x5 and B x2, priced at
// 10 and 20 from WAITING_CLIENT_APPROVAL on, and version 3.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	unitA, unitB, total := order.PendingPrice(), order.PendingPrice(), order.PendingPrice()
	if status != order.NewInquiry && status != order.PendingPricing {
		unitA = priced(t, "10")
		unitB = priced(t, "20")
		total = priced(t, "90")
	}
	a, err := order.NewItem("A", 5, unitA)
	require.NoError(t, err)
	b, err := order.NewItem("B", 2, unitB)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), "client-1", status, []order.Item{a, b}, total,
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), 3)
	require.NoError(t, err)
	return o
}

func priced(t *testing.T, amount string) order.Price {
	t.Helper()
	p, err := order.PricedAt(money(t, amount))
	require.NoError(t, err)
	return p
}

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func products(t *testing.T, refs ...kernel.ProductRef) []catalog.Product {
	t.Helper()
	list := make([]catalog.Product, 0, len(refs))
	for _, ref := range refs {
		p, err := catalog.NewProduct(ref, "Product "+string(ref), "pcs", true)
		require.NoError(t, err)
		list = append(list, p)
	}
	return list
}

// transactional wires a factory returning a unit of work whose repository is repo.
func transactional(ctx context.Context, repo *MockOrderRepository) (*MockOrderUoWFactory, *MockUoW) {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
