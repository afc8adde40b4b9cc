package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand offers an order to the next courier in the rotation.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, assignment.Auto)
//	if err != nil {
//	    return err
//	}
//	a, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrNoCourierAvailable) {
//	    // order stays Created, the retry job picks it up later
//	}
type AssignOrderCommand struct {
	orderID kernel.UUID
	typ     assignment.Type
	guard   guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID kernel.UUID, typ assignment.Type) (AssignOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), typ.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		typ:     typ,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignOrderCommand) Type() assignment.Type {
	return c.typ
}
