// Package commands contains the dispatch write operations.
// Every handler validates its command, runs its writes in one unit of work,
// and performs notifications only after the commit succeeded.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work views narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RosterRepoFactory interface {
		OnDutyRoster() ports.OnDutyRoster
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW is used by order intake.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RosterUoW is used by courier registration and duty changes.
	RosterUoW interface {
		TxManager
		RosterRepoFactory
		CourierRepoFactory
	}

	RosterUoWFactory interface {
		Create() RosterUoW
	}

	// UoW spans everything a dispatch decision reads and writes.
	//
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { ... }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   ...
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RosterRepoFactory
		AssignmentRepoFactory
		OrderRepoFactory
		CourierRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
