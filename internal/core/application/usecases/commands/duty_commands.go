package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrStartDutyCommandIsNotConstructed = errors.New("StartDutyCommand must be created via NewStartDutyCommand constructor")
	ErrEndDutyCommandIsNotConstructed   = errors.New("EndDutyCommand must be created via NewEndDutyCommand constructor")
)

// StartDutyCommand puts a courier at the tail of the on-duty rotation.
// ShiftRef optionally links the entry to the shift in the courier system.
type StartDutyCommand struct {
	courierID kernel.UUID
	shiftRef  string
	guard     guard.ConstructorGuard
}

func NewStartDutyCommand(courierID kernel.UUID, shiftRef string) (StartDutyCommand, error) {
	if err := courierID.Validate(); err != nil {
		return StartDutyCommand{}, err
	}

	return StartDutyCommand{
		courierID: courierID,
		shiftRef:  strings.TrimSpace(shiftRef),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StartDutyCommand) Validate() error {
	return c.guard.Validate(ErrStartDutyCommandIsNotConstructed)
}

func (c StartDutyCommand) CourierID() kernel.UUID { return c.courierID }
func (c StartDutyCommand) ShiftRef() string       { return c.shiftRef }

// EndDutyCommand takes a courier out of the rotation.
type EndDutyCommand struct {
	courierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewEndDutyCommand(courierID kernel.UUID) (EndDutyCommand, error) {
	if err := courierID.Validate(); err != nil {
		return EndDutyCommand{}, err
	}

	return EndDutyCommand{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c EndDutyCommand) Validate() error {
	return c.guard.Validate(ErrEndDutyCommandIsNotConstructed)
}

func (c EndDutyCommand) CourierID() kernel.UUID { return c.courierID }
