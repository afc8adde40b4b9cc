package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentTimeoutJob *AssignmentTimeoutJob
	orderDispatchJob     *OrderDispatchJob
}

func NewJobManager(assignmentTimeoutJob *AssignmentTimeoutJob, orderDispatchJob *OrderDispatchJob) *JobManager {
	return &JobManager{
		assignmentTimeoutJob: assignmentTimeoutJob,
		orderDispatchJob:     orderDispatchJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment timeout job: %w", err)
	}

	if err := jm.orderDispatchJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentTimeoutJob.Stop()
		return fmt.Errorf("failed to start order dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes.
func (jm *JobManager) StopAll() {
	jm.orderDispatchJob.Stop()
	jm.assignmentTimeoutJob.Stop()
}
