// Package roster models the on-duty rotation used to pick the next courier.
//
// Couriers are served in ascending OnDutySince order. Going on duty and
// accepting an order both move a courier to the tail; rejecting or ignoring
// an offer leaves the position untouched.
package roster

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry")

// Entry is a courier's place in the rotation.
type Entry struct {
	courierID   kernel.UUID
	onDutySince time.Time
	shiftRef    string
	guard       guard.ConstructorGuard
}

// NewEntry builds an entry. shiftRef is optional and may be empty.
func NewEntry(courierID kernel.UUID, onDutySince time.Time, shiftRef string) (Entry, error) {
	if err := courierID.Validate(); err != nil {
		return Entry{}, errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	if onDutySince.IsZero() {
		return Entry{}, errs.NewValueIsRequiredError("onDutySince")
	}

	return Entry{
		courierID:   courierID,
		onDutySince: onDutySince,
		shiftRef:    strings.TrimSpace(shiftRef),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e Entry) CourierID() kernel.UUID {
	return e.courierID
}

func (e Entry) OnDutySince() time.Time {
	return e.onDutySince
}

// ShiftRef is the external shift identifier, empty when unknown.
func (e Entry) ShiftRef() string {
	return e.shiftRef
}

// Before reports whether e is served before other.
func (e Entry) Before(other Entry) bool {
	return e.onDutySince.Before(other.onDutySince)
}
