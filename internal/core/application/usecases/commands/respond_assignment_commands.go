package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const maxRejectionReasonLength = 500

var (
	ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
		"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
	)
	ErrRejectAssignmentCommandIsNotConstructed = errors.New(
		"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
	)
)

// AcceptAssignmentCommand is a courier taking the offered order.
type AcceptAssignmentCommand struct {
	assignmentID kernel.UUID
	courierID    kernel.UUID
	guard        guard.ConstructorGuard
}

func NewAcceptAssignmentCommand(assignmentID, courierID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), courierID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return AcceptAssignmentCommand{
		assignmentID: assignmentID,
		courierID:    courierID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c AcceptAssignmentCommand) CourierID() kernel.UUID    { return c.courierID }

// RejectAssignmentCommand is a courier declining the offered order.
// The reason is free text and may be empty.
type RejectAssignmentCommand struct {
	assignmentID kernel.UUID
	courierID    kernel.UUID
	reason       string
	guard        guard.ConstructorGuard
}

func NewRejectAssignmentCommand(assignmentID, courierID kernel.UUID, reason string) (RejectAssignmentCommand, error) {
	reason = strings.TrimSpace(reason)

	if err := errors.Join(
		assignmentID.Validate(),
		courierID.Validate(),
		validateReason(reason),
	); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return RejectAssignmentCommand{
		assignmentID: assignmentID,
		courierID:    courierID,
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RejectAssignmentCommand) CourierID() kernel.UUID    { return c.courierID }
func (c RejectAssignmentCommand) Reason() string            { return c.reason }

func validateReason(reason string) error {
	if len(reason) > maxRejectionReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxRejectionReasonLength)
	}
	return nil
}
