package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// TimeoutReason is recorded on assignments resolved by the sweeper.
const TimeoutReason = "response window elapsed"

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")
	ErrAssignmentNotOwned         = errors.New("assignment belongs to another courier")
	ErrInvalidAssignmentStatus    = errors.New("assignment is no longer pending")
	ErrAssignmentExpired          = errors.New("assignment response window has elapsed")
)

// Assignment is one offer of an order to a courier.
type Assignment struct {
	id              kernel.UUID
	orderID         kernel.UUID
	courierID       kernel.UUID
	status          Status
	typ             Type
	assignedAt      time.Time
	responseAt      *time.Time
	timeoutAt       time.Time
	rejectionReason string

	guard guard.ConstructorGuard
}

// NewAssignment creates a PENDING assignment that times out window after assignedAt.
func NewAssignment(id, orderID, courierID kernel.UUID, typ Type, assignedAt time.Time, window time.Duration) (*Assignment, error) {
	a := &Assignment{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(id, orderID, courierID),
		typ.Validate(),
		validateWindow(window),
	); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	a.typ = typ
	a.assignedAt = assignedAt
	a.timeoutAt = assignedAt.Add(window)
	return a, nil
}

// RestoreAssignment rebuilds an assignment loaded from storage. A nil
// timeoutAt means the assignment never expires.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	status Status,
	typ Type,
	assignedAt time.Time,
	responseAt *time.Time,
	timeoutAt *time.Time,
	rejectionReason string,
) (*Assignment, error) {
	a := &Assignment{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setIDs(id, orderID, courierID),
		status.Validate(),
		typ.Validate(),
	); err != nil {
		return nil, err
	}

	a.status = status
	a.typ = typ
	a.assignedAt = assignedAt
	a.rejectionReason = rejectionReason
	if responseAt != nil {
		at := *responseAt
		a.responseAt = &at
	}
	if timeoutAt != nil {
		a.timeoutAt = *timeoutAt
	}
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID        { return a.id }
func (a *Assignment) OrderID() kernel.UUID   { return a.orderID }
func (a *Assignment) CourierID() kernel.UUID { return a.courierID }
func (a *Assignment) Status() Status         { return a.status }
func (a *Assignment) Type() Type             { return a.typ }
func (a *Assignment) AssignedAt() time.Time  { return a.assignedAt }
func (a *Assignment) RejectionReason() string {
	return a.rejectionReason
}

// ResponseAt is set when the courier accepted or rejected.
func (a *Assignment) ResponseAt() *time.Time {
	if a.responseAt == nil {
		return nil
	}
	at := *a.responseAt
	return &at
}

// TimeoutAt returns the response deadline and false when there is none.
func (a *Assignment) TimeoutAt() (time.Time, bool) {
	return a.timeoutAt, !a.timeoutAt.IsZero()
}

// IsExpiredAt reports whether the deadline is strictly before now.
func (a *Assignment) IsExpiredAt(now time.Time) bool {
	return !a.timeoutAt.IsZero() && now.After(a.timeoutAt)
}

// IsDue reports whether the sweeper should time out this assignment at now.
func (a *Assignment) IsDue(now time.Time) bool {
	return a.status == Pending && !a.timeoutAt.IsZero() && !a.timeoutAt.After(now)
}

// IsActionableAt reports whether the courier can still see and answer the offer.
func (a *Assignment) IsActionableAt(now time.Time) bool {
	return a.status == Pending && (a.timeoutAt.IsZero() || a.timeoutAt.After(now))
}

func (a *Assignment) CheckOwner(courierID kernel.UUID) error {
	if !a.courierID.IsEqual(courierID) {
		return ErrAssignmentNotOwned
	}
	return nil
}

// Accept resolves the assignment as taken by its courier.
func (a *Assignment) Accept(courierID kernel.UUID, now time.Time) error {
	if err := a.CheckOwner(courierID); err != nil {
		return err
	}
	if a.status != Pending {
		return fmt.Errorf("%w: %s", ErrInvalidAssignmentStatus, a.status)
	}
	if a.IsExpiredAt(now) {
		return ErrAssignmentExpired
	}

	a.status = Accepted
	a.responseAt = &now
	return nil
}

// Reject resolves the assignment as declined. Expiry is not checked, a late
// rejection still frees the order for the next courier.
func (a *Assignment) Reject(courierID kernel.UUID, now time.Time, reason string) error {
	if err := a.CheckOwner(courierID); err != nil {
		return err
	}
	if a.status != Pending {
		return fmt.Errorf("%w: %s", ErrInvalidAssignmentStatus, a.status)
	}

	a.status = Rejected
	a.responseAt = &now
	a.rejectionReason = strings.TrimSpace(reason)
	return nil
}

// Expire resolves an unanswered assignment. now is recorded as the
// response time.
func (a *Assignment) Expire(now time.Time) error {
	if a.status != Pending {
		return fmt.Errorf("%w: %s", ErrInvalidAssignmentStatus, a.status)
	}

	a.status = Timeout
	a.responseAt = &now
	a.rejectionReason = TimeoutReason
	return nil
}

func (a *Assignment) setIDs(id, orderID, courierID kernel.UUID) error {
	if err := errors.Join(
		wrapID("id", id),
		wrapID("orderID", orderID),
		wrapID("courierID", courierID),
	); err != nil {
		return err
	}
	a.id = id
	a.orderID = orderID
	a.courierID = courierID
	return nil
}

func wrapID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func validateWindow(window time.Duration) error {
	if window <= 0 {
		return errs.NewValueIsOutOfRangeError("window", window, "1ns", "unbounded")
	}
	return nil
}
