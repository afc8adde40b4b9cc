package cmd

import (
	"log/slog"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.NotificationPort
	metrics    *metrics.DispatchMetrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	notifier ports.NotificationPort,
	dispatchMetrics *metrics.DispatchMetrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		metrics:    dispatchMetrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (c *CompositionRoot) options() []commands.Option {
	opts := []commands.Option{commands.WithClock(c.now)}
	if c.metrics != nil {
		opts = append(opts, commands.WithObserver(c.metrics))
	}
	return opts
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.RosterUoWFactory = FuncRosterUoWFactory(func() commands.RosterUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDutyCommandHandler() commands.DutyCommandHandler {
	var f commands.RosterUoWFactory = FuncRosterUoWFactory(func() commands.RosterUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDutyCommandHandler(f, c.logger, c.options()...)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uow(), c.notifier, c.cfg.ResponseWindow, c.logger, c.options()...)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.uow(), c.notifier, c.logger, c.options()...)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(
		c.uow(), c.notifier, c.CreateAssignOrderCommandHandler(), c.logger, c.options()...)
}

func (c *CompositionRoot) CreateExpireAssignmentsCommandHandler() commands.ExpireAssignmentsCommandHandler {
	return commands.NewExpireAssignmentsCommandHandler(
		c.uow(), c.notifier, c.CreateAssignOrderCommandHandler(), c.logger, c.options()...)
}

func (c *CompositionRoot) CreateDispatchAwaitingOrdersCommandHandler() commands.DispatchAwaitingOrdersCommandHandler {
	return commands.NewDispatchAwaitingOrdersCommandHandler(c.uow(), c.CreateAssignOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetPendingAssignmentsQueryHandler() queries.GetPendingAssignmentsQueryHandler {
	return queries.NewGetPendingAssignmentsQueryHandler(c.gormDB, c.now)
}

func (c *CompositionRoot) CreateGetOrderAssignmentsQueryHandler() queries.GetOrderAssignmentsQueryHandler {
	return queries.NewGetOrderAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOnDutyCouriersQueryHandler() queries.GetOnDutyCouriersQueryHandler {
	return queries.NewGetOnDutyCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCourier:      c.CreateCreateCourierCommandHandler(),
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		Duty:               c.CreateDutyCommandHandler(),
		AssignOrder:        c.CreateAssignOrderCommandHandler(),
		AcceptAssignment:   c.CreateAcceptAssignmentCommandHandler(),
		RejectAssignment:   c.CreateRejectAssignmentCommandHandler(),
		PendingAssignments: c.CreateGetPendingAssignmentsQueryHandler(),
		OrderAssignments:   c.CreateGetOrderAssignmentsQueryHandler(),
		OnDutyCouriers:     c.CreateGetOnDutyCouriersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	timeoutJob := jobs.NewAssignmentTimeoutJob(
		c.CreateExpireAssignmentsCommandHandler(), c.cfg.SweepInterval, c.cfg.SweepBatchSize, c.logger)
	if c.metrics != nil {
		timeoutJob.WithObserver(c.metrics)
	}

	return jobs.NewJobManager(
		timeoutJob,
		jobs.NewOrderDispatchJob(
			c.CreateDispatchAwaitingOrdersCommandHandler(), c.cfg.DispatchRetryEvery, c.cfg.SweepBatchSize, c.logger),
	)
}

type FuncRosterUoWFactory func() commands.RosterUoW

func (f FuncRosterUoWFactory) Create() commands.RosterUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
