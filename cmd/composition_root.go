package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	calculator services.DeliveryFeeCalculator
	zones      map[string]zone.DeliveryZone
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		calculator: services.NewDeliveryFeeCalculator(),
		zones:      defaultDeliveryZones(),
		logger:     logger,
	}
}

// DeliveryZones returns the zone catalogue used to quote delivery fees at
// checkout.
func (c *CompositionRoot) DeliveryZones() map[string]zone.DeliveryZone {
	return c.zones
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.calculator, c.publisher)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartOrderItemCommandHandler() commands.StartOrderItemCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartOrderItemCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderItemCommandHandler() commands.CompleteOrderItemCommandHandler {
	var f commands.TicketUoWFactory = FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderItemCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRiderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOrdersCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrdersQueryHandler() queries.TrackOrdersQueryHandler {
	return queries.NewTrackOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersByStatusQueryHandler() queries.ListOrdersByStatusQueryHandler {
	return queries.NewListOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveTicketsQueryHandler() queries.ListActiveTicketsQueryHandler {
	return queries.NewListActiveTicketsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(paymentExpiry time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireOrdersCommandHandler(), paymentExpiry, c.logger)
}

// defaultDeliveryZones builds the static zone catalogue. The zone admin
// surface lives in a separate back-office service; this process only needs a
// snapshot of the fee configuration per zone name.
func defaultDeliveryZones() map[string]zone.DeliveryZone {
	freeOver := kernel.MustMoney(5000)

	city, err := zone.NewFlatFeeZone("city-centre", kernel.MustMoney(150), kernel.MustMoney(500),
		&freeOver, "30-45 min")
	if err != nil {
		panic(err)
	}

	suburbs, err := zone.NewDistanceFeeZone("suburbs", 3.0,
		kernel.MustMoney(200), kernel.MustMoney(50), kernel.MustMoney(800),
		nil, "45-60 min")
	if err != nil {
		panic(err)
	}

	return map[string]zone.DeliveryZone{
		city.Name():    city,
		suburbs.Name(): suburbs,
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
