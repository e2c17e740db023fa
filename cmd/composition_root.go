package cmd

import (
	shophttp "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/postgres"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/ports"
	"shop/internal/jobs"
	"shop/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *metrics.OrderMetrics
	logger     *log.Entry
}

// NewCompositionRoot wires every adapter around one database handle and one
// metrics registry.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *log.Entry) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		metrics:    metrics.NewOrderMetricsWithRegisterer(registry),
		logger:     logger,
	}
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) component(name string) *log.Entry {
	return c.logger.WithField("component", name)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() *commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateProductCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateChangeProductPriceCommandHandler() *commands.ChangeProductPriceCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewChangeProductPriceCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.uow(), c.metrics, c.component("create-order"))
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.uow(), c.metrics, c.component("cancel-order"))
	return &h
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() *commands.AdvanceOrderStatusCommandHandler {
	h := commands.NewAdvanceOrderStatusCommandHandler(c.uow(), c.metrics, c.component("advance-order-status"))
	return &h
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(
		c.uow(),
		c.CreateCancelOrderCommandHandler(),
		c.component("expire-pending-orders"),
	)
}

func (c *CompositionRoot) CreatePublishOrderEventsCommandHandler(
	publisher ports.EventPublisher,
) commands.PublishOrderEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOrderEventsCommandHandler(f, publisher, c.metrics, c.component("outbox-relay"))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBuyerOrdersQueryHandler() queries.ListBuyerOrdersQueryHandler {
	return queries.NewListBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case behind the REST routes.
func (c *CompositionRoot) CreateHTTPServer() *shophttp.Server {
	return shophttp.NewServer(shophttp.Handlers{
		CreateProduct:      c.CreateCreateProductCommandHandler(),
		ChangeProductPrice: c.CreateChangeProductPriceCommandHandler(),
		GetProduct:         c.CreateGetProductQueryHandler(),
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		AdvanceOrderStatus: c.CreateAdvanceOrderStatusCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListBuyerOrders:    c.CreateListBuyerOrdersQueryHandler(),
	}, c.component("http"))
}

// CreateJobManager registers the background jobs. The relay is left out
// without a publisher, the expiry job without a TTL.
func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) *jobs.JobManager {
	manager := jobs.NewJobManager()

	if publisher != nil {
		manager.Add("outbox relay", jobs.NewOutboxRelayJob(
			c.CreatePublishOrderEventsCommandHandler(publisher),
			c.config.OutboxSchedule,
			c.config.OutboxBatchSize,
			c.logger,
		))
	}

	if c.config.PendingOrderTTL > 0 {
		manager.Add("pending order expiry", jobs.NewPendingOrderExpiryJob(
			c.CreateExpirePendingOrdersCommandHandler(),
			c.config.PendingExpirySchedule,
			c.config.PendingOrderTTL,
			c.config.PendingExpiryBatch,
			c.logger,
		))
	}

	return manager
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
