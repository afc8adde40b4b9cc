package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderAssignmentsQueryIsNotConstructed = errors.New(
	"GetOrderAssignmentsQuery must be created via NewGetOrderAssignmentsQuery constructor",
)

// GetOrderAssignmentsQuery returns every dispatch attempt for one order.
type GetOrderAssignmentsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderAssignmentsQuery(orderID kernel.UUID) (GetOrderAssignmentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderAssignmentsQuery{}, err
	}
	return GetOrderAssignmentsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAssignmentsQueryIsNotConstructed)
}

func (q GetOrderAssignmentsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type AssignmentHistoryResponse struct {
	ID              kernel.UUID
	CourierID       kernel.UUID
	Status          string
	Type            string
	AssignedAt      time.Time
	ResponseAt      *time.Time
	TimeoutAt       *time.Time
	RejectionReason string
}
