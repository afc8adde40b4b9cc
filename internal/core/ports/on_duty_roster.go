// Package ports defines the contracts between dispatch use cases and the
// infrastructure behind them.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roster"
)

// OnDutyRoster is the FIFO rotation of on-duty couriers, ordered by
// OnDutySince and then by insertion order.
type OnDutyRoster interface {
	// Enqueue puts the courier on duty. An existing entry is replaced, which
	// moves the courier to the position given by entry.OnDutySince().
	Enqueue(ctx context.Context, entry roster.Entry) error

	// Dequeue returns the courier at the head of the rotation, skipping the
	// excluded ones. The entry stays in the roster.
	// Returns ErrNoCourierAvailable when nothing matches.
	Dequeue(ctx context.Context, exclude ...kernel.UUID) (kernel.UUID, error)

	// Requeue moves an on-duty courier to the tail by setting OnDutySince to now.
	Requeue(ctx context.Context, courierID kernel.UUID, now time.Time) error

	// Remove takes the courier off duty.
	Remove(ctx context.Context, courierID kernel.UUID) error

	Count(ctx context.Context) (int64, error)

	// List returns the rotation head first.
	List(ctx context.Context) ([]roster.Entry, error)
}
