package http

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/roster"
)

// Use case contracts the server depends on. The application handlers in
// commands and queries satisfy them.
type (
	CourierCreator interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	DutyManager interface {
		StartDuty(ctx context.Context, cmd commands.StartDutyCommand) (roster.Entry, error)
		EndDuty(ctx context.Context, cmd commands.EndDutyCommand) error
	}

	OrderAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignOrderCommand) (*assignment.Assignment, error)
	}

	AssignmentAccepter interface {
		Handle(ctx context.Context, cmd commands.AcceptAssignmentCommand) (*assignment.Assignment, error)
	}

	AssignmentRejecter interface {
		Handle(ctx context.Context, cmd commands.RejectAssignmentCommand) (commands.RejectAssignmentResult, error)
	}

	PendingAssignmentsReader interface {
		Handle(ctx context.Context, query queries.GetPendingAssignmentsQuery) ([]queries.PendingAssignmentResponse, error)
	}

	OrderAssignmentsReader interface {
		Handle(ctx context.Context, query queries.GetOrderAssignmentsQuery) ([]queries.AssignmentHistoryResponse, error)
	}

	OnDutyCouriersReader interface {
		Handle(ctx context.Context, query queries.GetOnDutyCouriersQuery) ([]queries.OnDutyCourierResponse, error)
	}
)

// Handlers groups everything the server calls.
type Handlers struct {
	CreateCourier      CourierCreator
	CreateOrder        OrderCreator
	Duty               DutyManager
	AssignOrder        OrderAssigner
	AcceptAssignment   AssignmentAccepter
	RejectAssignment   AssignmentRejecter
	PendingAssignments PendingAssignmentsReader
	OrderAssignments   OrderAssignmentsReader
	OnDutyCouriers     OnDutyCouriersReader
}
