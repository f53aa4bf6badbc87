package cmd

import (
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/events"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rediscache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"github.com/Shopify/sarama"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Infrastructure holds the connections opened by the entrypoint.
type Infrastructure struct {
	DB       *gorm.DB
	Producer sarama.SyncProducer
	Redis    redis.Cmdable
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     logrus.FieldLogger
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher *events.Dispatcher
	cache      *rediscache.HeatmapCache
	allocator  services.PaymentAllocator
	matcher    services.CourierMatcher
	ledger     services.SettlementLedger
}

func NewCompositionRoot(config Config, infra Infrastructure, logger logrus.FieldLogger) (*CompositionRoot, error) {
	allocator, err := services.NewPaymentAllocator(config.TaxRate)
	if err != nil {
		return nil, err
	}
	matcher, err := newCourierMatcher(config.MatchingMetric, config.MatchingRadius)
	if err != nil {
		return nil, err
	}

	publisher := kafka.NewPublisher(infra.Producer, config.KafkaTopic)
	dispatcher := events.NewDispatcher(publisher, config.DispatchBuffer, logger)

	return &CompositionRoot{
		config:     config,
		gormDB:     infra.DB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB, dispatcher),
		dispatcher: dispatcher,
		cache:      rediscache.NewHeatmapCache(infra.Redis, config.HeatmapKey),
		allocator:  allocator,
		matcher:    matcher,
		ledger:     services.NewSettlementLedger(time.Now),
	}, nil
}

func newCourierMatcher(metric string, radius float64) (services.CourierMatcher, error) {
	m := services.Metric(metric)
	if radius == 0 {
		radius = services.DefaultPlanarRadius
		if m == services.Haversine {
			radius = services.DefaultHaversineRadius
		}
	}
	return services.NewCourierMatcher(m, radius)
}

// Dispatcher must be running for committed events to reach Kafka.
func (c *CompositionRoot) Dispatcher() *events.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.allocator, c.config.DeliveryFee, time.Now)
}

func (c *CompositionRoot) CreateOrderActionCommandHandler() commands.OrderActionCommandHandler {
	return commands.NewOrderActionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMatchCourierCommandHandler() commands.MatchCourierCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMatchCourierCommandHandler(f, c.matcher)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.CreateMatchCourierCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateSweepUnmatchedOrdersCommandHandler() commands.SweepUnmatchedOrdersCommandHandler {
	return commands.NewSweepUnmatchedOrdersCommandHandler(c.orderUoWFactory(), c.CreateMatchCourierCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.ledger)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	return commands.NewRegisterCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierStatusCommandHandler() commands.UpdateCourierStatusCommandHandler {
	return commands.NewUpdateCourierStatusCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateGroupCartCommandHandler() commands.CreateGroupCartCommandHandler {
	return commands.NewCreateGroupCartCommandHandler(c.groupCartUoWFactory(), nil, time.Now)
}

func (c *CompositionRoot) CreateAddGroupCartItemCommandHandler() commands.AddGroupCartItemCommandHandler {
	return commands.NewAddGroupCartItemCommandHandler(c.groupCartUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateCheckoutGroupCartCommandHandler() commands.CheckoutGroupCartCommandHandler {
	var f commands.GroupCheckoutUoWFactory = FuncGroupCheckoutUoWFactory(func() commands.GroupCheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutGroupCartCommandHandler(f, c.allocator, c.config.DeliveryFee, time.Now)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVendorOrdersQueryHandler() queries.GetVendorOrdersQueryHandler {
	return queries.NewGetVendorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierOrdersQueryHandler() queries.GetCourierOrdersQueryHandler {
	return queries.NewGetCourierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierProfileQueryHandler() queries.GetCourierProfileQueryHandler {
	return queries.NewGetCourierProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGroupCartQueryHandler() queries.GetGroupCartQueryHandler {
	return queries.NewGetGroupCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHeatmapQueryHandler() queries.GetHeatmapQueryHandler {
	return queries.NewGetHeatmapQueryHandler(c.cache, c.logger)
}

func (c *CompositionRoot) CreateAggregateDemandQueryHandler() queries.AggregateDemandQueryHandler {
	return queries.NewAggregateDemandQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuthenticator() (*httpin.Authenticator, error) {
	return httpin.NewAuthenticator(c.config.JWTSecret, c.config.JWTIssuer)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	auth, err := c.CreateAuthenticator()
	if err != nil {
		return nil, err
	}

	handlers := httpin.Handlers{
		PlaceOrder:          c.CreatePlaceOrderCommandHandler(),
		OrderAction:         c.CreateOrderActionCommandHandler(),
		MarkOrderReady:      c.CreateMarkOrderReadyCommandHandler(),
		MatchCourier:        c.CreateMatchCourierCommandHandler(),
		CompleteDelivery:    c.CreateCompleteDeliveryCommandHandler(),
		RegisterCourier:     c.CreateRegisterCourierCommandHandler(),
		UpdateCourierStatus: c.CreateUpdateCourierStatusCommandHandler(),
		CreateGroupCart:     c.CreateCreateGroupCartCommandHandler(),
		AddGroupCartItem:    c.CreateAddGroupCartItemCommandHandler(),
		CheckoutGroupCart:   c.CreateCheckoutGroupCartCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetVendorOrders:     c.CreateGetVendorOrdersQueryHandler(),
		GetCourierOrders:    c.CreateGetCourierOrdersQueryHandler(),
		GetCourierProfile:   c.CreateGetCourierProfileQueryHandler(),
		GetGroupCart:        c.CreateGetGroupCartQueryHandler(),
		GetHeatmap:          c.CreateGetHeatmapQueryHandler(),
	}
	return httpin.NewServer(handlers, auth, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewUnmatchedOrderSweepJob(
		c.CreateSweepUnmatchedOrdersCommandHandler(),
		c.config.SweepSchedule,
		c.config.SweepLimit,
		c.logger,
	)
	refresh := jobs.NewHeatmapRefreshJob(
		c.CreateAggregateDemandQueryHandler(),
		c.cache,
		jobs.HeatmapRefreshSettings{
			Spec:     c.config.HeatmapSchedule,
			Window:   c.config.HeatmapWindow,
			TTL:      c.config.HeatmapTTL,
			MaxCells: c.config.HeatmapMaxCells,
		},
		c.logger,
	)
	return jobs.NewJobManager(c.logger, sweep, refresh)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) groupCartUoWFactory() commands.GroupCartUoWFactory {
	return FuncGroupCartUoWFactory(func() commands.GroupCartUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncMatchUoWFactory func() commands.MatchUoW

func (f FuncMatchUoWFactory) Create() commands.MatchUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncGroupCartUoWFactory func() commands.GroupCartUoW

func (f FuncGroupCartUoWFactory) Create() commands.GroupCartUoW {
	return f()
}

type FuncGroupCheckoutUoWFactory func() commands.GroupCheckoutUoW

func (f FuncGroupCheckoutUoWFactory) Create() commands.GroupCheckoutUoW {
	return f()
}
