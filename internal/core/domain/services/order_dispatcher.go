package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

var (
	// ErrInsufficientCouriers is returned when a reassignment would only hand
	// the order back to the courier who just declined or ignored it.
	ErrInsufficientCouriers = errors.New("not enough on-duty couriers to reassign order")

	// ErrOrderNotDispatchable is returned for orders that are already assigned or final.
	ErrOrderNotDispatchable = errors.New("order is not awaiting dispatch")
)

// OrderDispatcher creates offers for orders. Courier selection itself is the
// roster's job; the dispatcher only applies the rules around it.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	if err := dispatcher.CheckReassignment(last, onDuty); err != nil {
//	    return err
//	}
//	a, err := dispatcher.Dispatch(o, c, assignment.Auto, now, 2*time.Minute)
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch offers o to c: the order is bound to the courier in Offered status
// and a new pending assignment with deadline now+window is returned.
// Neither argument is modified when an error is returned.
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	c *courier.Courier,
	typ assignment.Type,
	now time.Time,
	window time.Duration,
) (*assignment.Assignment, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return nil, err
	}
	if !o.Status().IsDispatchable() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDispatchable, o.ID(), o.Status())
	}

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), c.ID(), typ, now, window)
	if err != nil {
		return nil, err
	}

	if err = o.Offer(c.ID()); err != nil {
		return nil, err
	}

	return a, nil
}

// CheckReassignment trips when the latest attempt for the order was
// unsuccessful and at most one courier is on duty, since the rotation would
// only return the same courier again.
func (d OrderDispatcher) CheckReassignment(last *assignment.Assignment, onDuty int64) error {
	if last == nil || !last.Status().IsUnsuccessful() {
		return nil
	}
	if onDuty <= 1 {
		return ErrInsufficientCouriers
	}
	return nil
}

// ReassignmentExclusions lists couriers the rotation must skip when
// reassigning after last.
func (d OrderDispatcher) ReassignmentExclusions(last *assignment.Assignment) []kernel.UUID {
	if last == nil || !last.Status().IsUnsuccessful() {
		return nil
	}
	return []kernel.UUID{last.CourierID()}
}
