package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOnDutyCouriersQueryIsNotConstructed = errors.New(
	"GetOnDutyCouriersQuery must be created via NewGetOnDutyCouriersQuery constructor",
)

// GetOnDutyCouriersQuery is a snapshot of the rotation, next courier first.
type GetOnDutyCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOnDutyCouriersQuery() GetOnDutyCouriersQuery {
	return GetOnDutyCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOnDutyCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetOnDutyCouriersQueryIsNotConstructed)
}

type OnDutyCourierResponse struct {
	CourierID   kernel.UUID
	Name        string
	OnDutySince time.Time
	ShiftRef    string
}
