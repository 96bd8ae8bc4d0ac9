package cmd

import (
	"log/slog"

	httpin "orderledger/internal/adapters/in/http"
	"orderledger/internal/adapters/out/postgres"
	"orderledger/internal/adapters/out/postgres/productrepo"
	"orderledger/internal/adapters/out/razorpay"
	"orderledger/internal/adapters/out/tracking"
	"orderledger/internal/core/application/usecases/commands"
	"orderledger/internal/core/application/usecases/queries"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/services"
	"orderledger/internal/core/ports"
	"orderledger/internal/jobs"
	"orderledger/internal/pkg/keylock"
	"orderledger/internal/pkg/metrics"

	"gorm.io/gorm"
)

// CompositionRoot owns the process-scoped collaborators: one gateway client, one
// tracking client, one unit of work factory and one per-order lock table for the whole
// process.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	tracking ports.TrackingClient
	gateway  ports.PaymentGateway
	signer   services.PaymentSigner
	locks    *keylock.KeyLock
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewCompositionRoot wires the adapters. publisher may be nil, in which case order events
// are not published. The unit of work factory publishes them after each commit.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	collector *metrics.Metrics,
	logger *slog.Logger,
) (CompositionRoot, error) {
	signer, err := services.NewPaymentSigner(config.RazorpayKeySecret)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		tracking:   tracking.NewClient(config.TrackingBaseURL, config.TrackingTimeout, nil, logger),
		gateway:    razorpay.NewGateway(config.RazorpayKeyID, config.RazorpayKeySecret),
		signer:     signer,
		locks:      keylock.New(),
		metrics:    collector,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		productrepo.NewGormProductCatalog(c.gormDB),
		services.NewPriceCalculator(),
	)
}

func (c *CompositionRoot) CreateCreatePaymentOrderCommandHandler() commands.CreatePaymentOrderCommandHandler {
	return commands.NewCreatePaymentOrderCommandHandler(c.orderUoWFactory(), c.gateway, commands.PaymentSettings{
		Currency:       c.config.PaymentCurrency,
		MaxAmountMinor: c.config.PaymentMaxAmountMinor,
	})
}

func (c *CompositionRoot) CreateVerifyPaymentCommandHandler() commands.VerifyPaymentCommandHandler {
	return commands.NewVerifyPaymentCommandHandler(c.orderUoWFactory(), c.signer)
}

func (c *CompositionRoot) CreateMarkPaidFromCallbackCommandHandler() commands.MarkPaidFromCallbackCommandHandler {
	return commands.NewMarkPaidFromCallbackCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	policy := order.DeliveryPolicy{RequirePaymentBeforeDelivery: c.config.RequirePaymentBeforeDelivery}
	return commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory(), policy)
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	return commands.NewAssignParcelCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShippingAddressCommandHandler() commands.UpdateShippingAddressCommandHandler {
	var observer commands.AddressUpdateObserver
	if c.metrics != nil {
		observer = c.metrics
	}
	return commands.NewUpdateShippingAddressCommandHandler(
		c.uoWFactory(), c.tracking, c.locks, observer, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader(), c.tracking, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetSalesSummaryQueryHandler() queries.GetSalesSummaryQueryHandler {
	return queries.NewGetSalesSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesByDateQueryHandler() queries.GetSalesByDateQueryHandler {
	return queries.NewGetSalesByDateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOpenIncidentsQueryHandler() queries.ListOpenIncidentsQueryHandler {
	return queries.NewListOpenIncidentsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server over every use case.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.CommandHandlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		CreatePaymentOrder:    c.CreateCreatePaymentOrderCommandHandler(),
		VerifyPayment:         c.CreateVerifyPaymentCommandHandler(),
		MarkPaidFromCallback:  c.CreateMarkPaidFromCallbackCommandHandler(),
		MarkDelivered:         c.CreateMarkDeliveredCommandHandler(),
		AssignParcel:          c.CreateAssignParcelCommandHandler(),
		UpdateShippingAddress: c.CreateUpdateShippingAddressCommandHandler(),
	}, httpin.QueryHandlers{
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetSalesSummary:   c.CreateGetSalesSummaryQueryHandler(),
		GetSalesByDate:    c.CreateGetSalesByDateQueryHandler(),
		ListOpenIncidents: c.CreateListOpenIncidentsQueryHandler(),
	})
}

// CreateJobManager schedules the incident report on INCIDENT_REPORT_SCHEDULE.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateListOpenIncidentsQueryHandler(), c.config.IncidentReportSchedule, c.logger)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
