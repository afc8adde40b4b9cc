package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction; before Begin (or after Commit/Rollback) they
// run each statement on its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit and Rollback return an error when no transaction is active.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OnDutyRoster() OnDutyRoster
	AssignmentRepository() AssignmentRepository
	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
}
