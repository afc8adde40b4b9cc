package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AwaitingDispatcher runs one retry pass over orders without an offer.
type AwaitingDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchAwaitingOrdersCommand) (commands.DispatchResult, error)
}

// OrderDispatchJob retries dispatch for orders that have no pending offer.
type OrderDispatchJob struct {
	dispatcher AwaitingDispatcher
	interval   time.Duration
	batchSize  int
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewOrderDispatchJob(
	dispatcher AwaitingDispatcher,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OrderDispatchJob {
	logger = logger.With("component", "order_dispatch_job")
	return &OrderDispatchJob{
		dispatcher: dispatcher,
		interval:   interval,
		batchSize:  batchSize,
		cron:       newScheduler(logger),
		logger:     logger,
	}
}

func (j *OrderDispatchJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("order dispatch job: interval must be positive, got %s", j.interval)
	}

	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order dispatch job started", "interval", j.interval.String())
	return nil
}

func (j *OrderDispatchJob) RunOnce(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "order_dispatch_job.run")
	defer span.End()

	cmd, err := commands.NewDispatchAwaitingOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order dispatch job misconfigured", "error", err)
		return
	}

	result, err := j.dispatcher.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		j.logger.ErrorContext(ctx, "Order dispatch job failed", "error", err)
		return
	}

	if result.Dispatched > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Order dispatch pass finished",
			"attempted", result.Attempted,
			"dispatched", result.Dispatched,
			"unassignable", result.Unassignable,
			"failed", result.Failed,
		)
	}
}

func (j *OrderDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order dispatch job stopped")
}
