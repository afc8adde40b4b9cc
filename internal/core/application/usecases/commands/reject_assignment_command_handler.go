package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// OrderAssigner is the part of AssignOrderCommandHandler used for reassignment.
type OrderAssigner interface {
	Handle(ctx context.Context, cmd AssignOrderCommand) (*assignment.Assignment, error)
}

// RejectAssignmentResult holds the stored rejection and, when one could be
// made, the follow-up offer to the next courier.
type RejectAssignmentResult struct {
	Rejected *assignment.Assignment
	Next     *assignment.Assignment
}

// RejectAssignmentCommandHandler records a rejection and immediately tries
// the next courier. The rejecting courier keeps its place in the rotation.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationPort
	assigner   OrderAssigner
	logger     *slog.Logger
	opts       options
}

func NewRejectAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationPort,
	assigner OrderAssigner,
	logger *slog.Logger,
	opts ...Option,
) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		assigner:   assigner,
		logger:     logger.With("component", "dispatch"),
		opts:       newOptions(opts),
	}
}

// Handle returns ErrOrderUnassignable (wrapping the cause) together with the
// stored rejection when no other courier can take the order right now.
func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) (RejectAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return RejectAssignmentResult{}, err
	}

	a, o, err := h.reject(ctx, cmd)
	if err != nil {
		return RejectAssignmentResult{}, err
	}

	result := RejectAssignmentResult{Rejected: a}
	h.opts.observer.AssignmentResolved(assignment.Rejected)
	h.logger.InfoContext(ctx, "assignment rejected",
		"assignment_id", a.ID().String(),
		"order_id", a.OrderID().String(),
		"courier_id", a.CourierID().String(),
		"reason", a.RejectionReason(),
	)

	if o != nil {
		if err = h.notifier.NotifyOrderStatus(ctx, o.Owner(), o.ID(), o.Status(),
			"The courier declined your order, looking for another one"); err != nil {
			h.opts.observer.NotificationFailed(notifyOrderStatus)
			h.logger.WarnContext(ctx, "order status notification failed",
				"order_id", o.ID().String(), "error", err)
		}
	}

	reassign, err := NewAssignOrderCommand(a.OrderID(), assignment.Reassignment)
	if err != nil {
		return result, err
	}

	next, err := h.assigner.Handle(ctx, reassign)
	if errors.Is(err, services.ErrInsufficientCouriers) || errors.Is(err, ports.ErrNoCourierAvailable) {
		h.logger.InfoContext(ctx, "order left without courier",
			"order_id", a.OrderID().String(), "error", err)
		return result, fmt.Errorf("%w: %w", ErrOrderUnassignable, err)
	}
	if err != nil {
		return result, err
	}

	result.Next = next
	return result, nil
}

func (h RejectAssignmentCommandHandler) reject(ctx context.Context, cmd RejectAssignmentCommand) (*assignment.Assignment, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.AssignmentRepository()

	a, err := loadAssignment(ctx, ledger, cmd.AssignmentID())
	if err != nil {
		return nil, nil, err
	}

	if err = a.Reject(cmd.CourierID(), h.opts.now(), cmd.Reason()); err != nil {
		return nil, nil, err
	}

	if err = ledger.Resolve(ctx, a); err != nil {
		return nil, nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, a.OrderID())
	if err != nil {
		h.logger.WarnContext(ctx, "order of rejected assignment not loaded",
			"order_id", a.OrderID().String(), "error", err)
		o = nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return a, o, nil
}
