package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/kafka"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/adapters/out/wshub"
	"restaurant/internal/core/application/realtime"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	hub        *wshub.Hub
	propagator *realtime.Propagator
	closers    []io.Closer
}

// NewCompositionRoot wires the realtime transports. The websocket hub is
// always on; RabbitMQ and Kafka join the fan-out when configured.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		hub:        wshub.NewHub(logger),
	}

	publishers := []ports.EventPublisher{c.hub}

	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		p := rabbitmq.NewPublisher(conn, cfg.RabbitMQExchange)
		publishers = append(publishers, p)
		c.closers = append(c.closers, p)
	}

	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, p)
		c.closers = append(c.closers, p)
	}

	c.propagator = realtime.NewPropagator(
		realtime.NewFanoutPublisher(publishers...),
		logger,
		realtime.WithWorkers(cfg.PropagatorWorkers),
		realtime.WithQueueSize(cfg.PropagatorQueueSize),
		realtime.WithPublishTimeout(cfg.PropagatorTimeout),
	)

	return c, nil
}

func (c *CompositionRoot) Hub() *wshub.Hub {
	return c.hub
}

func (c *CompositionRoot) Propagator() *realtime.Propagator {
	return c.propagator
}

// Close drains the propagator, then releases the transports.
func (c *CompositionRoot) Close(ctx context.Context) error {
	errList := []error{c.propagator.Stop(ctx)}
	c.hub.Close()
	for _, closer := range c.closers {
		errList = append(errList, closer.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.propagator, nil, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewUpdateOrderStatusCommandHandler(f, c.propagator)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCancelOrderCommandHandler(f, c.propagator)
	return &h
}

func (c *CompositionRoot) CreateBulkUpdateAvailabilityCommandHandler() *commands.BulkUpdateAvailabilityCommandHandler {
	var f commands.AvailabilityUoWFactory = FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewBulkUpdateAvailabilityCommandHandler(f, c.propagator)
	return &h
}

func (c *CompositionRoot) CreateSetIngredientExpiredCommandHandler() *commands.SetIngredientExpiredCommandHandler {
	var f commands.AvailabilityUoWFactory = FuncAvailabilityUoWFactory(func() commands.AvailabilityUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSetIngredientExpiredCommandHandler(f, c.propagator)
	return &h
}

func (c *CompositionRoot) CreateSetDishAvailabilityCommandHandler() *commands.SetDishAvailabilityCommandHandler {
	var f commands.MenuUoWFactory = FuncMenuUoWFactory(func() commands.MenuUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSetDishAvailabilityCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateGetBranchOrdersQueryHandler() queries.GetBranchOrdersQueryHandler {
	return queries.NewGetBranchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchMenuQueryHandler() queries.GetBranchMenuQueryHandler {
	return queries.NewGetBranchMenuQueryHandler(&c.uowFactory)
}

func (c *CompositionRoot) CreateGetIngredientAvailabilityQueryHandler() queries.GetIngredientAvailabilityQueryHandler {
	return queries.NewGetIngredientAvailabilityQueryHandler(&c.uowFactory)
}

func (c *CompositionRoot) CreateGetDishAvailabilityQueryHandler() queries.GetDishAvailabilityQueryHandler {
	return queries.NewGetDishAvailabilityQueryHandler(&c.uowFactory)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus:         c.CreateUpdateOrderStatusCommandHandler(),
		CancelOrder:               c.CreateCancelOrderCommandHandler(),
		BulkUpdateAvailability:    c.CreateBulkUpdateAvailabilityCommandHandler(),
		SetIngredientExpired:      c.CreateSetIngredientExpiredCommandHandler(),
		SetDishAvailability:       c.CreateSetDishAvailabilityCommandHandler(),
		GetBranchOrders:           c.CreateGetBranchOrdersQueryHandler(),
		GetBranchMenu:             c.CreateGetBranchMenuQueryHandler(),
		GetIngredientAvailability: c.CreateGetIngredientAvailabilityQueryHandler(),
		GetDishAvailability:       c.CreateGetDishAvailabilityQueryHandler(),
	}, c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, c.cfg.WSSweepSchedule, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMenuUoWFactory func() commands.MenuUoW

func (f FuncMenuUoWFactory) Create() commands.MenuUoW {
	return f()
}

type FuncAvailabilityUoWFactory func() commands.AvailabilityUoW

func (f FuncAvailabilityUoWFactory) Create() commands.AvailabilityUoW {
	return f()
}
