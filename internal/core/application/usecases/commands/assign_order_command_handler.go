package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler creates at most one pending assignment per order.
//
// Within one transaction it locks the order row, returns an existing pending
// assignment unchanged, applies the reassignment guard, takes the head of the
// rotation and records the offer. The courier is notified after commit.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationPort
	dispatcher services.OrderDispatcher
	window     time.Duration
	logger     *slog.Logger
	opts       options
}

func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationPort,
	window time.Duration,
	logger *slog.Logger,
	opts ...Option,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dispatcher: services.NewOrderDispatcher(),
		window:     window,
		logger:     logger.With("component", "dispatch"),
		opts:       newOptions(opts),
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, summary, err := h.assign(ctx, cmd)
	if errors.Is(err, ports.ErrPendingAssignmentExists) {
		return h.existingPending(ctx, cmd.OrderID())
	}
	if err != nil {
		h.reportFailure(err)
		return nil, err
	}
	if summary == nil {
		return a, nil
	}

	h.opts.observer.AssignmentCreated(a.Type())
	h.logger.InfoContext(ctx, "order offered",
		"order_id", a.OrderID().String(),
		"courier_id", a.CourierID().String(),
		"assignment_id", a.ID().String(),
		"type", a.Type().String(),
	)

	if err = h.notifier.NotifyNewAssignment(ctx, a, *summary); err != nil {
		h.opts.observer.NotificationFailed(notifyNewAssignment)
		h.logger.WarnContext(ctx, "new assignment notification failed",
			"assignment_id", a.ID().String(), "error", err)
	}

	return a, nil
}

// assign returns a nil summary when an already pending assignment is reused.
func (h AssignOrderCommandHandler) assign(ctx context.Context, cmd AssignOrderCommand) (*assignment.Assignment, *string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	ledger := uow.AssignmentRepository()
	roster := uow.OnDutyRoster()

	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	pending, err := ledger.FindPendingByOrder(ctx, o.ID())
	if err != nil {
		return nil, nil, err
	}
	if pending != nil {
		return pending, nil, nil
	}

	var exclude []kernel.UUID
	if cmd.Type() == assignment.Reassignment {
		last, lastErr := ledger.FindLatestUnsuccessfulByOrder(ctx, o.ID())
		if lastErr != nil {
			return nil, nil, lastErr
		}

		onDuty, countErr := roster.Count(ctx)
		if countErr != nil {
			return nil, nil, countErr
		}

		if err = h.dispatcher.CheckReassignment(last, onDuty); err != nil {
			return nil, nil, err
		}
		exclude = h.dispatcher.ReassignmentExclusions(last)
	}

	courierID, err := roster.Dequeue(ctx, exclude...)
	if err != nil {
		return nil, nil, err
	}

	c, err := uow.CourierRepository().Get(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, fmt.Errorf("%w: on-duty courier %s is not registered", ErrDispatch, courierID)
	}
	if err != nil {
		return nil, nil, err
	}

	a, err := h.dispatcher.Dispatch(o, c, cmd.Type(), h.opts.now(), h.window)
	if err != nil {
		return nil, nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = ledger.Add(ctx, a); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	summary := o.Description()
	return a, &summary, nil
}

// existingPending reads the assignment a concurrent dispatch created.
func (h AssignOrderCommandHandler) existingPending(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	pending, err := h.uowFactory.Create().AssignmentRepository().FindPendingByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: pending assignment for order %s vanished", ErrDispatch, orderID)
	}
	return pending, nil
}

func (h AssignOrderCommandHandler) reportFailure(err error) {
	switch {
	case errors.Is(err, ports.ErrNoCourierAvailable):
		h.opts.observer.DispatchFailed(reasonNoCourier)
	case errors.Is(err, services.ErrInsufficientCouriers):
		h.opts.observer.DispatchFailed(reasonInsufficient)
	case errors.Is(err, ErrDispatch):
		h.opts.observer.DispatchFailed(reasonInconsistency)
	}
}
