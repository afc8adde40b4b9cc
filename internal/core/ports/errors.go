package ports

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/assignment"
)

var (
	// ErrNoCourierAvailable is returned by OnDutyRoster.Dequeue when nobody eligible is on duty.
	ErrNoCourierAvailable = errors.New("no courier available")

	// ErrPendingAssignmentExists is returned by AssignmentRepository.Add when the
	// order already has a PENDING assignment.
	ErrPendingAssignmentExists = errors.New("order already has a pending assignment")

	// ErrAssignmentAlreadyResolved is returned by AssignmentRepository.Resolve
	// when the stored row stopped being PENDING before the update.
	ErrAssignmentAlreadyResolved = fmt.Errorf("%w: resolved concurrently", assignment.ErrInvalidAssignmentStatus)
)
