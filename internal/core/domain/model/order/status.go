package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Created orders are waiting for their first courier.
	Created

	// Offered orders have a candidate courier and a pending assignment.
	Offered

	// Assigned orders were accepted by a courier.
	Assigned

	// Completed and Cancelled are final and set outside dispatch.
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Created:   "Created",
	Offered:   "Offered",
	Assigned:  "Assigned",
	Completed: "Completed",
	Cancelled: "Cancelled",
}

func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are allowed.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// IsDispatchable reports whether the order may receive a (new) courier offer.
func (s Status) IsDispatchable() bool {
	return s == Created || s == Offered
}

// ValidateCanHaveCourier checks that courier binding is consistent with the status.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	switch {
	case courier && s == Created:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s))
	case !courier && (s == Offered || s == Assigned || s == Completed):
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s))
	}
	return nil
}

// Offer transitions Created or Offered to Offered.
func (s Status) Offer() (Status, error) {
	if !s.IsDispatchable() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to offer", s))
	}
	return Offered, nil
}

// Assign transitions Offered to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Offered {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign", s))
	}
	return Assigned, nil
}

// Complete transitions Assigned to Completed.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Completed, nil
}

// Cancel transitions any non-final status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsFinal() || s == Unknown {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return Cancelled, nil
}
