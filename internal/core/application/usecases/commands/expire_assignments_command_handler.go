package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// SweepResult counts what one ExpireAssignments run did.
type SweepResult struct {
	Expired    int
	Reassigned int
	Failed     int
}

// ExpireAssignmentsCommandHandler times out offers whose response window
// has passed and hands each order to the next courier.
//
// Every assignment is expired in its own transaction. One that was answered
// in the meantime is skipped without error.
type ExpireAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationPort
	assigner   OrderAssigner
	logger     *slog.Logger
	opts       options
}

func NewExpireAssignmentsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationPort,
	assigner OrderAssigner,
	logger *slog.Logger,
	opts ...Option,
) ExpireAssignmentsCommandHandler {
	return ExpireAssignmentsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		assigner:   assigner,
		logger:     logger.With("component", "timeout-sweeper"),
		opts:       newOptions(opts),
	}
}

func (h ExpireAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireAssignmentsCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	now := h.opts.now()

	due, err := h.uowFactory.Create().AssignmentRepository().FindExpiredPending(ctx, now, cmd.BatchSize())
	if err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	for _, candidate := range due {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		expired, expireErr := h.expire(ctx, candidate)
		if expireErr != nil {
			result.Failed++
			h.logger.ErrorContext(ctx, "failed to expire assignment",
				"assignment_id", candidate.ID().String(), "error", expireErr)
			continue
		}
		if expired == nil {
			continue
		}

		result.Expired++
		h.opts.observer.AssignmentResolved(assignment.Timeout)
		h.logger.InfoContext(ctx, "assignment timed out",
			"assignment_id", expired.ID().String(),
			"order_id", expired.OrderID().String(),
			"courier_id", expired.CourierID().String(),
		)

		if err = h.notifier.NotifyAssignmentTimeout(ctx, expired.CourierID(), expired.ID()); err != nil {
			h.opts.observer.NotificationFailed(notifyTimeout)
			h.logger.WarnContext(ctx, "timeout notification failed",
				"assignment_id", expired.ID().String(), "error", err)
		}

		switch reassignErr := h.reassign(ctx, expired); {
		case reassignErr == nil:
			result.Reassigned++
		case errors.Is(reassignErr, services.ErrInsufficientCouriers),
			errors.Is(reassignErr, ports.ErrNoCourierAvailable):
			h.logger.InfoContext(ctx, "order left without courier",
				"order_id", expired.OrderID().String(), "error", reassignErr)
		default:
			result.Failed++
			h.logger.ErrorContext(ctx, "failed to reassign order",
				"order_id", expired.OrderID().String(), "error", reassignErr)
		}
	}

	if len(due) > 0 {
		h.logger.InfoContext(ctx, "timeout sweep finished",
			"due", len(due), "expired", result.Expired,
			"reassigned", result.Reassigned, "failed", result.Failed)
	}

	return result, nil
}

// expire returns nil without error when the assignment is no longer due.
func (h ExpireAssignmentsCommandHandler) expire(ctx context.Context, candidate *assignment.Assignment) (*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.AssignmentRepository()

	a, err := ledger.GetForUpdate(ctx, candidate.ID())
	if err != nil {
		return nil, err
	}
	now := h.opts.now()
	if !a.IsDue(now) {
		return nil, nil
	}

	if err = a.Expire(now); err != nil {
		return nil, err
	}

	err = ledger.Resolve(ctx, a)
	if errors.Is(err, ports.ErrAssignmentAlreadyResolved) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (h ExpireAssignmentsCommandHandler) reassign(ctx context.Context, expired *assignment.Assignment) error {
	cmd, err := NewAssignOrderCommand(expired.OrderID(), assignment.Reassignment)
	if err != nil {
		return err
	}
	_, err = h.assigner.Handle(ctx, cmd)
	return err
}
