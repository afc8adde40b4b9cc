package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/roster"
)

// DutyCommandHandler maintains the on-duty rotation.
type DutyCommandHandler struct {
	uowFactory RosterUoWFactory
	logger     *slog.Logger
	opts       options
}

func NewDutyCommandHandler(uowFactory RosterUoWFactory, logger *slog.Logger, opts ...Option) DutyCommandHandler {
	return DutyCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "duty"),
		opts:       newOptions(opts),
	}
}

// StartDuty enqueues a registered courier. Starting again while on duty
// restarts the courier's wait at the tail.
func (h DutyCommandHandler) StartDuty(ctx context.Context, cmd StartDutyCommand) (roster.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return roster.Entry{}, err
	}

	entry, err := roster.NewEntry(cmd.CourierID(), h.opts.now(), cmd.ShiftRef())
	if err != nil {
		return roster.Entry{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return roster.Entry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CourierRepository().Get(ctx, cmd.CourierID()); err != nil {
		return roster.Entry{}, err
	}

	if err = uow.OnDutyRoster().Enqueue(ctx, entry); err != nil {
		return roster.Entry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return roster.Entry{}, err
	}

	h.logger.InfoContext(ctx, "courier on duty",
		"courier_id", entry.CourierID().String(), "shift_ref", entry.ShiftRef())
	return entry, nil
}

// EndDuty removes the courier from the rotation. Pending offers stay valid
// until answered or timed out.
func (h DutyCommandHandler) EndDuty(ctx context.Context, cmd EndDutyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OnDutyRoster().Remove(ctx, cmd.CourierID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "courier off duty", "courier_id", cmd.CourierID().String())
	return nil
}
