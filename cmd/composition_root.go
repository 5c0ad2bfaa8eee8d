package cmd

import (
	"context"
	"log/slog"

	httpin "quoteflow/internal/adapters/in/http"
	"quoteflow/internal/adapters/out/kafka"
	"quoteflow/internal/adapters/out/memory"
	"quoteflow/internal/adapters/out/postgres"
	"quoteflow/internal/adapters/out/postgres/catalogrepo"
	"quoteflow/internal/adapters/out/postgres/outboxrepo"
	"quoteflow/internal/adapters/out/pricing"
	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/application/usecases/queries"
	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/jobs"
	"quoteflow/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type ordersInStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersInStatusQuery) ([]queries.GetOrdersInStatusQueryResponse, error)
}

type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	registry *prometheus.Registry

	uowFactory     ports.UnitOfWorkFactory
	catalog        ports.ProductCatalog
	outbox         ports.OutboxReader
	ordersInStatus ordersInStatusHandler
	pricing        ports.PricingService
	publisher      *kafka.Publisher
}

// NewCompositionRoot wires the adapters. A nil gormDB selects the in-memory store, seeded
// with the default catalog.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		config:    config,
		logger:    logger,
		registry:  prometheus.NewRegistry(),
		pricing:   pricing.NewClient(config.PricingServiceURL, config.PricingServiceTimeout),
		publisher: kafka.NewPublisher(config.KafkaHost),
	}

	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, config.KafkaOrderChangedTopic)
		root.catalog = catalogrepo.NewGormProductCatalog(gormDB)
		root.outbox = outboxrepo.NewGormOutbox(gormDB)
		root.ordersInStatus = queries.NewGetOrdersInStatusQueryHandler(gormDB)
		return root
	}

	store := memory.NewStore(config.KafkaOrderChangedTopic, DefaultProducts()...)
	root.uowFactory = memory.NewUnitOfWorkFactory(store)
	root.catalog = store
	root.outbox = store
	root.ordersInStatus = memory.NewOrdersInStatusQueryHandler(store)
	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateInquiryCommandHandler() commands.CreateInquiryCommandHandler {
	return commands.NewCreateInquiryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateModifyOrderCommandHandler() commands.ModifyOrderCommandHandler {
	var f commands.ModifyOrderUoWFactory = FuncModifyOrderUoWFactory(func() commands.ModifyOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewModifyOrderCommandHandler(f, c.catalog)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateBeginPricingCommandHandler() commands.BeginPricingCommandHandler {
	return commands.NewBeginPricingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompletePricingCommandHandler() commands.CompletePricingCommandHandler {
	return commands.NewCompletePricingCommandHandler(c.orderUoWFactory(), c.pricing)
}

func (c *CompositionRoot) CreateAdvanceFulfillmentCommandHandler() commands.AdvanceFulfillmentCommandHandler {
	return commands.NewAdvanceFulfillmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() commands.ArchiveOrderCommandHandler {
	return commands.NewArchiveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetCatalogQueryHandler() queries.GetCatalogQueryHandler {
	return queries.NewGetCatalogQueryHandler(c.catalog)
}

// CreateRouter builds the echo instance serving the API, health, metrics and swagger.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateInquiry:      c.CreateCreateInquiryCommandHandler(),
		ModifyOrder:        c.CreateModifyOrderCommandHandler(),
		ConfirmOrder:       c.CreateConfirmOrderCommandHandler(),
		ConfirmDelivery:    c.CreateConfirmDeliveryCommandHandler(),
		BeginPricing:       c.CreateBeginPricingCommandHandler(),
		CompletePricing:    c.CreateCompletePricingCommandHandler(),
		AdvanceFulfillment: c.CreateAdvanceFulfillmentCommandHandler(),
		ArchiveOrder:       c.CreateArchiveOrderCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		GetCatalog:         c.CreateGetCatalogQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.logger, c.registry)
}

// CreateJobManager enables the pricing job when it has a schedule, and the outbox relay
// when it has a schedule and Kafka brokers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var pricingJob *jobs.PricingJob
	if c.config.PricingJobSchedule != "" {
		begin := c.CreateBeginPricingCommandHandler()
		complete := c.CreateCompletePricingCommandHandler()
		pricingJob = jobs.NewPricingJob(
			c.ordersInStatus,
			&begin,
			&complete,
			metrics.NewPricingMetrics(c.registry),
			c.config.PricingJobSchedule,
			c.logger,
		)
	}

	var relayJob *jobs.OutboxRelayJob
	if c.config.OutboxRelayJobSchedule != "" && c.publisher.Enabled() {
		relayJob = jobs.NewOutboxRelayJob(
			c.outbox,
			c.publisher,
			metrics.NewRelayMetrics(c.registry),
			c.config.OutboxRelayJobSchedule,
			c.logger,
		)
	}

	return jobs.NewJobManager(pricingJob, relayJob)
}

// Close releases the Kafka writers.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

// DefaultProducts is the catalog of the in-memory store. It matches the rows seeded by the
// products migration.
func DefaultProducts() []catalog.Product {
	seed := []struct {
		ref, name, unit string
	}{
		{"STEEL-BOLT-M8", "Steel bolt M8", "box"},
		{"STEEL-NUT-M8", "Steel nut M8", "box"},
		{"WASHER-M8", "Washer M8", "box"},
		{"PIPE-20MM", "Copper pipe 20 mm", "m"},
		{"VALVE-20MM", "Ball valve 20 mm", "pcs"},
	}

	products := make([]catalog.Product, 0, len(seed))
	for _, s := range seed {
		p, err := catalog.NewProduct(kernel.ProductRef(s.ref), s.name, s.unit, true)
		if err != nil {
			panic(err)
		}
		products = append(products, p)
	}
	return products
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncModifyOrderUoWFactory func() commands.ModifyOrderUoW

func (f FuncModifyOrderUoWFactory) Create() commands.ModifyOrderUoW {
	return f()
}
