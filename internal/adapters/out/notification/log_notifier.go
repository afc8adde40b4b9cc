package notification

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

var _ ports.NotificationPort = LogNotifier{}

// LogNotifier writes notifications to the log. It is used when no broker is
// configured and never fails.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With("component", "notifier")}
}

func (n LogNotifier) NotifyNewAssignment(ctx context.Context, a *assignment.Assignment, summary string) error {
	n.logger.InfoContext(ctx, EventNewAssignment,
		"assignment_id", a.ID().String(),
		"order_id", a.OrderID().String(),
		"courier_id", a.CourierID().String(),
		"summary", summary,
	)
	return nil
}

func (n LogNotifier) NotifyAssignmentTimeout(ctx context.Context, courierID, assignmentID kernel.UUID) error {
	n.logger.InfoContext(ctx, EventAssignmentTimeout,
		"assignment_id", assignmentID.String(),
		"courier_id", courierID.String(),
	)
	return nil
}

func (n LogNotifier) NotifyOrderStatus(
	ctx context.Context,
	ownerID, orderID kernel.UUID,
	status order.Status,
	message string,
) error {
	n.logger.InfoContext(ctx, EventOrderStatus,
		"order_id", orderID.String(),
		"owner_id", ownerID.String(),
		"status", status.String(),
		"message", message,
	)
	return nil
}
