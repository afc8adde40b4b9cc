package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct{ mock.Mock }

func (m *MockSweeper) Handle(ctx context.Context, cmd commands.ExpireAssignmentsCommand) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type MockAwaitingDispatcher struct{ mock.Mock }

func (m *MockAwaitingDispatcher) Handle(ctx context.Context, cmd commands.DispatchAwaitingOrdersCommand) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

type countingSweeper struct{ runs atomic.Int32 }

func (s *countingSweeper) Handle(context.Context, commands.ExpireAssignmentsCommand) (commands.SweepResult, error) {
	s.runs.Add(1)
	return commands.SweepResult{}, nil
}

type sweepDurations struct{ n int }

func (s *sweepDurations) ObserveSweep(float64) { s.n++ }

func bufferedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestAssignmentTimeoutJob_RunOnce(t *testing.T) {
	ctx := t.Context()
	sweeper := new(MockSweeper)
	sweeper.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ExpireAssignmentsCommand) bool {
		return cmd.BatchSize() == 25
	})).Return(commands.SweepResult{Expired: 2, Reassigned: 1, Failed: 1}, nil).Once()

	logger, buf := bufferedLogger()
	durations := &sweepDurations{}
	job := jobs.NewAssignmentTimeoutJob(sweeper, 30*time.Second, 25, logger).WithObserver(durations)

	job.RunOnce(ctx)

	sweeper.AssertExpectations(t)
	assert.Equal(t, 1, durations.n)
	assert.Contains(t, buf.String(), "Assignment timeout pass had failures")
	assert.Contains(t, buf.String(), `"component":"assignment_timeout_job"`)
}

func TestAssignmentTimeoutJob_RunOnce_Error(t *testing.T) {
	ctx := t.Context()
	sweeper := new(MockSweeper)
	sweeper.On("Handle", ctx, mock.Anything).Return(commands.SweepResult{}, errors.New("db down")).Once()

	logger, buf := bufferedLogger()
	jobs.NewAssignmentTimeoutJob(sweeper, 30*time.Second, 100, logger).RunOnce(ctx)

	assert.Contains(t, buf.String(), "Assignment timeout job failed")
	assert.Contains(t, buf.String(), "db down")
}

func TestAssignmentTimeoutJob_InvalidBatchSize(t *testing.T) {
	sweeper := new(MockSweeper)
	logger, buf := bufferedLogger()

	jobs.NewAssignmentTimeoutJob(sweeper, 30*time.Second, 0, logger).RunOnce(t.Context())

	sweeper.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	assert.Contains(t, buf.String(), "misconfigured")
}

func TestAssignmentTimeoutJob_StartRejectsZeroInterval(t *testing.T) {
	logger, _ := bufferedLogger()

	err := jobs.NewAssignmentTimeoutJob(&countingSweeper{}, 0, 100, logger).Start()

	require.Error(t, err)
}

func TestAssignmentTimeoutJob_RunsOnSchedule(t *testing.T) {
	sweeper := &countingSweeper{}
	logger, _ := bufferedLogger()
	job := jobs.NewAssignmentTimeoutJob(sweeper, time.Second, 100, logger)

	require.NoError(t, job.Start())
	assert.Eventually(t, func() bool { return sweeper.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestOrderDispatchJob_RunOnce(t *testing.T) {
	ctx := t.Context()
	dispatcher := new(MockAwaitingDispatcher)
	dispatcher.On("Handle", ctx, mock.MatchedBy(func(cmd commands.DispatchAwaitingOrdersCommand) bool {
		return cmd.BatchSize() == 10
	})).Return(commands.DispatchResult{Attempted: 3, Dispatched: 2, Unassignable: 1}, nil).Once()

	logger, buf := bufferedLogger()
	jobs.NewOrderDispatchJob(dispatcher, 15*time.Second, 10, logger).RunOnce(ctx)

	dispatcher.AssertExpectations(t)
	assert.Contains(t, buf.String(), "Order dispatch pass finished")
}

func TestOrderDispatchJob_RunOnce_NothingToDo(t *testing.T) {
	ctx := t.Context()
	dispatcher := new(MockAwaitingDispatcher)
	dispatcher.On("Handle", ctx, mock.Anything).Return(commands.DispatchResult{}, nil).Once()

	logger, buf := bufferedLogger()
	jobs.NewOrderDispatchJob(dispatcher, 15*time.Second, 10, logger).RunOnce(ctx)

	assert.NotContains(t, buf.String(), "Order dispatch pass finished")
}

func TestJobManager_StartAndStop(t *testing.T) {
	logger, buf := bufferedLogger()
	manager := jobs.NewJobManager(
		jobs.NewAssignmentTimeoutJob(&countingSweeper{}, time.Minute, 100, logger),
		jobs.NewOrderDispatchJob(new(MockAwaitingDispatcher), time.Minute, 100, logger),
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Contains(t, buf.String(), "Assignment timeout job started")
	assert.Contains(t, buf.String(), "Order dispatch job stopped")
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	logger, buf := bufferedLogger()
	manager := jobs.NewJobManager(
		jobs.NewAssignmentTimeoutJob(&countingSweeper{}, time.Minute, 100, logger),
		jobs.NewOrderDispatchJob(new(MockAwaitingDispatcher), 0, 100, logger),
	)

	err := manager.StartAll()

	require.ErrorContains(t, err, "failed to start order dispatch job")
	assert.Contains(t, buf.String(), "Assignment timeout job stopped")
}
