package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// DispatchResult counts what one DispatchAwaitingOrders run did.
type DispatchResult struct {
	Attempted    int
	Dispatched   int
	Unassignable int
	Failed       int
}

// DispatchAwaitingOrdersCommandHandler retries orders that were left without
// an offer, for example because nobody was on duty when they arrived. Orders
// that never had an offer are dispatched as AUTO, the rest as REASSIGNMENT.
type DispatchAwaitingOrdersCommandHandler struct {
	uowFactory UoWFactory
	assigner   OrderAssigner
	logger     *slog.Logger
}

func NewDispatchAwaitingOrdersCommandHandler(
	uowFactory UoWFactory,
	assigner OrderAssigner,
	logger *slog.Logger,
) DispatchAwaitingOrdersCommandHandler {
	return DispatchAwaitingOrdersCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		logger:     logger.With("component", "dispatch-retry"),
	}
}

func (h DispatchAwaitingOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchAwaitingOrdersCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()

	awaiting, err := uow.OrderRepository().ListAwaitingDispatch(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	var result DispatchResult
	for _, o := range awaiting {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Attempted++

		err = h.dispatch(ctx, uow.AssignmentRepository(), o)
		switch {
		case err == nil:
			result.Dispatched++
		case errors.Is(err, ports.ErrNoCourierAvailable):
			result.Unassignable++
			// the rotation is empty, the rest of the batch would fail the same way
			return result, nil
		case errors.Is(err, services.ErrInsufficientCouriers):
			result.Unassignable++
		default:
			result.Failed++
			h.logger.ErrorContext(ctx, "failed to dispatch awaiting order",
				"order_id", o.ID().String(), "error", err)
		}
	}

	return result, nil
}

func (h DispatchAwaitingOrdersCommandHandler) dispatch(ctx context.Context, ledger ports.AssignmentRepository, o *order.Order) error {
	latest, err := ledger.FindLatestByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	typ := assignment.Auto
	if latest != nil {
		typ = assignment.Reassignment
	}

	cmd, err := NewAssignOrderCommand(o.ID(), typ)
	if err != nil {
		return err
	}

	_, err = h.assigner.Handle(ctx, cmd)
	return err
}
