package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the dispatch view of the order store.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate locks the order row until the transaction ends. Assignment
	// creation for one order is serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListAwaitingDispatch returns up to limit orders that are Created or
	// Offered but have no PENDING assignment.
	ListAwaitingDispatch(ctx context.Context, limit int) ([]*order.Order, error)
}
