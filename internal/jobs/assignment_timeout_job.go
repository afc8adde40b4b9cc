package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("dispatch/jobs")

// Sweeper runs one timeout pass.
type Sweeper interface {
	Handle(ctx context.Context, cmd commands.ExpireAssignmentsCommand) (commands.SweepResult, error)
}

// SweepObserver receives the duration of every pass.
type SweepObserver interface {
	ObserveSweep(seconds float64)
}

// AssignmentTimeoutJob periodically expires unanswered offers.
type AssignmentTimeoutJob struct {
	sweeper   Sweeper
	interval  time.Duration
	batchSize int
	observer  SweepObserver
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewAssignmentTimeoutJob(
	sweeper Sweeper,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *AssignmentTimeoutJob {
	logger = logger.With("component", "assignment_timeout_job")
	return &AssignmentTimeoutJob{
		sweeper:   sweeper,
		interval:  interval,
		batchSize: batchSize,
		cron:      newScheduler(logger),
		logger:    logger,
	}
}

// WithObserver sets where pass durations are reported.
func (j *AssignmentTimeoutJob) WithObserver(observer SweepObserver) *AssignmentTimeoutJob {
	j.observer = observer
	return j
}

func (j *AssignmentTimeoutJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("assignment timeout job: interval must be positive, got %s", j.interval)
	}

	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment timeout job started", "interval", j.interval.String())
	return nil
}

// RunOnce performs a single sweeper pass.
func (j *AssignmentTimeoutJob) RunOnce(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "assignment_timeout_job.run")
	defer span.End()
	start := time.Now()

	cmd, err := commands.NewExpireAssignmentsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment timeout job misconfigured", "error", err)
		return
	}

	result, err := j.sweeper.Handle(ctx, cmd)
	if j.observer != nil {
		j.observer.ObserveSweep(time.Since(start).Seconds())
	}
	if err != nil {
		span.RecordError(err)
		j.logger.ErrorContext(ctx, "Assignment timeout job failed", "error", err)
		return
	}

	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Assignment timeout pass had failures",
			"expired", result.Expired, "reassigned", result.Reassigned, "failed", result.Failed)
	}
}

// Stop waits for a running pass to finish.
func (j *AssignmentTimeoutJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Assignment timeout job stopped")
}
