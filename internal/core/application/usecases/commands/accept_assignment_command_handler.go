package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AcceptAssignmentCommandHandler binds the order to the accepting courier.
//
// The assignment and the order change in one transaction. Afterwards the
// courier moves to the tail of the rotation and the order owner is told;
// both follow-ups are best effort.
type AcceptAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationPort
	logger     *slog.Logger
	opts       options
}

func NewAcceptAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationPort,
	logger *slog.Logger,
	opts ...Option,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "dispatch"),
		opts:       newOptions(opts),
	}
}

func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.opts.now()

	a, o, err := h.accept(ctx, cmd)
	if err != nil {
		return nil, err
	}

	h.opts.observer.AssignmentResolved(assignment.Accepted)
	h.logger.InfoContext(ctx, "assignment accepted",
		"assignment_id", a.ID().String(),
		"order_id", a.OrderID().String(),
		"courier_id", a.CourierID().String(),
	)

	if err = h.uowFactory.Create().OnDutyRoster().Requeue(ctx, a.CourierID(), now); err != nil {
		h.logger.WarnContext(ctx, "requeue after accept failed",
			"courier_id", a.CourierID().String(), "error", err)
	}

	if err = h.notifier.NotifyOrderStatus(ctx, o.Owner(), o.ID(), o.Status(), "A courier accepted your order"); err != nil {
		h.opts.observer.NotificationFailed(notifyOrderStatus)
		h.logger.WarnContext(ctx, "order status notification failed",
			"order_id", o.ID().String(), "error", err)
	}

	return a, nil
}

func (h AcceptAssignmentCommandHandler) accept(ctx context.Context, cmd AcceptAssignmentCommand) (*assignment.Assignment, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.AssignmentRepository()
	orders := uow.OrderRepository()

	a, err := loadAssignment(ctx, ledger, cmd.AssignmentID())
	if err != nil {
		return nil, nil, err
	}

	if err = a.Accept(cmd.CourierID(), h.opts.now()); err != nil {
		return nil, nil, err
	}

	o, err := orders.GetForUpdate(ctx, a.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, fmt.Errorf("%w: order %s of assignment %s is missing", ErrDispatch, a.OrderID(), a.ID())
	}
	if err != nil {
		return nil, nil, err
	}
	if o.Status() != order.Offered {
		return nil, nil, fmt.Errorf("%w: order %s is %s", services.ErrOrderNotDispatchable, o.ID(), o.Status())
	}

	if err = ledger.Resolve(ctx, a); err != nil {
		return nil, nil, err
	}

	if err = o.Assign(a.CourierID()); err != nil {
		return nil, nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return a, o, nil
}

// loadAssignment locks the assignment and maps a missing row to ErrAssignmentNotFound.
func loadAssignment(ctx context.Context, ledger ports.AssignmentRepository, id kernel.UUID) (*assignment.Assignment, error) {
	a, err := ledger.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAssignmentNotFound, id)
	}
	return a, err
}
