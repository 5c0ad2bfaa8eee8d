package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "quoteflow/internal/adapters/out/postgres"
	"quoteflow/internal/adapters/out/postgres/outboxrepo"
	"quoteflow/internal/adapters/out/postgres/pgtest"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

const testTopic = "order.status-changed"

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries and the transactional
// outbox of the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  *postgres_adapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.database = database
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB, testTopic)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.IdempotencyStore())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitStoresOrderAndEvents() {
	ctx := context.Background()
	o := suite.storeInquiry()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Load(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.BeginPricing())
	suite.Require().NoError(uow.OrderRepository().Save(ctx, loaded, loaded.Version()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(loaded.DomainEvents(), "events are cleared once stored")

	messages := suite.pending()
	suite.Require().Len(messages, 1)
	suite.Equal(testTopic, messages[0].Topic)
	suite.Equal(o.ID().String(), messages[0].Key)

	var payload ports.OrderStatusChangedMessage
	suite.Require().NoError(json.Unmarshal(messages[0].Payload, &payload))
	suite.Equal(o.ID().String(), payload.OrderID)
	suite.Equal("BeginPricing", payload.Action)
	suite.Equal(order.NewInquiry.String(), payload.From)
	suite.Equal(order.PendingPricing.String(), payload.To)
	suite.Equal(int64(2), payload.Version)
}

// A failed command leaves neither the state change nor its event behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackStoresNothing() {
	ctx := context.Background()
	o := suite.storeInquiry()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Load(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.BeginPricing())
	suite.Require().NoError(uow.OrderRepository().Save(ctx, loaded, loaded.Version()))
	suite.Require().NoError(uow.IdempotencyStore().Remember(ctx, ports.IdempotencyRecord{
		OrderID: o.ID(), Key: "k-1", Fingerprint: fingerprint("a"),
	}))
	suite.Require().NoError(uow.Rollback(ctx))

	stored, err := suite.factory.Create().OrderRepository().Load(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.NewInquiry, stored.Status())
	suite.Equal(int64(1), stored.Version())
	suite.Empty(suite.pending())

	_, found, err := suite.factory.Create().IdempotencyStore().Find(ctx, o.ID(), "k-1")
	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IdempotencyKeyCommitsWithOrder() {
	ctx := context.Background()
	o := suite.storeInquiry()
	record := ports.IdempotencyRecord{OrderID: o.ID(), Key: "k-2", Fingerprint: fingerprint("b")}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.IdempotencyStore().Remember(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	found, ok, err := suite.factory.Create().IdempotencyStore().Find(ctx, o.ID(), "k-2")
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(record, found)

	_, ok, err = suite.factory.Create().IdempotencyStore().Find(ctx, kernel.NewUUID(), "k-2")
	suite.Require().NoError(err)
	suite.False(ok, "keys are scoped to one order")
}

// Two units of work race on the same version; the loser gets a conflict and emits nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentSaveConflict() {
	ctx := context.Background()
	o := suite.storeInquiry()

	winner := suite.factory.Create()
	loser := suite.factory.Create()
	suite.Require().NoError(winner.Begin(ctx))
	suite.Require().NoError(loser.Begin(ctx))

	first, err := winner.OrderRepository().Load(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := loser.OrderRepository().Load(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.BeginPricing())
	suite.Require().NoError(winner.OrderRepository().Save(ctx, first, first.Version()))
	suite.Require().NoError(winner.Commit(ctx))

	suite.Require().NoError(second.BeginPricing())
	err = loser.OrderRepository().Save(ctx, second, second.Version())
	suite.Require().Error(err)
	suite.Require().NoError(loser.Rollback(ctx))

	suite.Len(suite.pending(), 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) storeInquiry() *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewUUID(), "client-1", []order.QuoteLine{
		{ProductRef: "STEEL-BOLT-M8", Quantity: 5},
	}, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) pending() []ports.OutboxMessage {
	messages, err := outboxrepo.NewGormOutbox(suite.database.DB).FetchPending(context.Background(), 100)
	suite.Require().NoError(err)
	return messages
}

func fingerprint(seed string) string {
	b := make([]byte, 64)
	for i := range b {
		b[i] = seed[0]
	}
	return string(b)
}
