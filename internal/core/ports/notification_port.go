package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// NotificationPort delivers dispatch events to couriers and order owners.
// Delivery is best effort: callers log failures and carry on.
type NotificationPort interface {
	NotifyNewAssignment(ctx context.Context, a *assignment.Assignment, summary string) error
	NotifyAssignmentTimeout(ctx context.Context, courierID, assignmentID kernel.UUID) error
	NotifyOrderStatus(ctx context.Context, ownerID, orderID kernel.UUID, status order.Status, message string) error
}
