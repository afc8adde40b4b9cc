package order

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the dispatch view of a delivery order.
//
// Invariants:
//   - id and ownerID are valid
//   - a courier is bound exactly when status is Offered, Assigned or Completed
//     (optional for Cancelled)
type Order struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	description string
	courierID   *kernel.UUID
	status      Status

	isConstructed bool
}

// NewOrder creates an order in Created status with no courier.
func NewOrder(id, ownerID kernel.UUID, description string) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(ownerID),
	); err != nil {
		return nil, err
	}
	o.description = strings.TrimSpace(description)

	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(id, ownerID kernel.UUID, description string, status Status, courierID *kernel.UUID) (*Order, error) {
	o := &Order{isConstructed: true, description: description}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(ownerID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}

	o.status = status
	o.courierID = courierID
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Owner is the customer notified about dispatch progress.
func (o *Order) Owner() kernel.UUID {
	return o.ownerID
}

// Description is the short summary sent to couriers with an offer.
func (o *Order) Description() string {
	return o.description
}

func (o *Order) Status() Status {
	return o.status
}

// Courier returns the bound courier, nil when none.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Offer binds a candidate courier while the order waits for a response.
// Re-offering to another courier is allowed.
func (o *Order) Offer(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Offer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Assign records that courierID accepted the offer.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerID", err)
	}
	o.ownerID = ownerID
	return nil
}
