package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is stored verbatim in the assignments table.
type Status string

const (
	Pending  Status = "PENDING"
	Accepted Status = "ACCEPTED"
	Rejected Status = "REJECTED"
	Timeout  Status = "TIMEOUT"
)

func (s Status) Validate() error {
	switch s {
	case Pending, Accepted, Rejected, Timeout:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid assignment status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected || s == Timeout
}

// IsUnsuccessful reports whether the attempt ended without the courier taking the order.
func (s Status) IsUnsuccessful() bool {
	return s == Rejected || s == Timeout
}

// Type distinguishes the first dispatch of an order from later attempts.
type Type string

const (
	Auto         Type = "AUTO"
	Reassignment Type = "REASSIGNMENT"
)

func (t Type) Validate() error {
	switch t {
	case Auto, Reassignment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid assignment type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}
