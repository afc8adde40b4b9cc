// Package queries contains the dispatch read models. Handlers read straight
// from the database with raw SQL and never go through the aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPendingAssignmentsQueryIsNotConstructed = errors.New(
	"GetPendingAssignmentsQuery must be created via NewGetPendingAssignmentsQuery constructor",
)

// GetPendingAssignmentsQuery lists the offers a courier can still answer.
//
// Example:
//
//	query, err := NewGetPendingAssignmentsQuery(courierID)
//	if err != nil {
//	    return err
//	}
//	offers, err := handler.Handle(ctx, query)
type GetPendingAssignmentsQuery struct {
	courierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetPendingAssignmentsQuery(courierID kernel.UUID) (GetPendingAssignmentsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetPendingAssignmentsQuery{}, err
	}
	return GetPendingAssignmentsQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingAssignmentsQueryIsNotConstructed)
}

func (q GetPendingAssignmentsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// PendingAssignmentResponse is one open offer. TimeoutAt is nil for offers
// without a deadline.
type PendingAssignmentResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	OrderSummary string
	Type         string
	AssignedAt   time.Time
	TimeoutAt    *time.Time
}
