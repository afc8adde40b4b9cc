package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the ledger of dispatch attempts.
//
// Rows are inserted once and resolved at most once. Lookups that may
// legitimately find nothing (FindPendingByOrder, FindLatestByOrder,
// FindLatestUnsuccessfulByOrder) return nil without an error.
type AssignmentRepository interface {
	// Add inserts a new PENDING assignment.
	// Returns ErrPendingAssignmentExists if the order already has one.
	Add(ctx context.Context, a *assignment.Assignment) error

	// Resolve persists a status change made by Accept, Reject or Expire. The
	// update only applies while the stored row is still PENDING, otherwise
	// ErrAssignmentAlreadyResolved is returned.
	Resolve(ctx context.Context, a *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	FindPendingByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
	FindLatestByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// FindLatestUnsuccessfulByOrder returns the newest REJECTED or TIMEOUT attempt.
	FindLatestUnsuccessfulByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// FindExpiredPending returns up to limit PENDING assignments whose
	// deadline is at or before now, oldest deadline first.
	FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*assignment.Assignment, error)
}
