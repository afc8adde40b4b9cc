package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingAssignmentsQueryHandler returns a courier's actionable offers,
// newest first. Offers past their deadline are hidden even before the sweeper
// has marked them as timed out.
type GetPendingAssignmentsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetPendingAssignmentsQueryHandler uses time.Now when now is nil.
func NewGetPendingAssignmentsQueryHandler(db *gorm.DB, now func() time.Time) GetPendingAssignmentsQueryHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return GetPendingAssignmentsQueryHandler{db: db, now: now}
}

func (h GetPendingAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingAssignmentsQuery,
) ([]PendingAssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]PendingAssignmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			o.description,
			a.assignment_type,
			a.assigned_at,
			a.timeout_at
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE a.courier_id = ?
			AND a.status = ?
			AND (a.timeout_at IS NULL OR a.timeout_at > ?)
		ORDER BY a.assigned_at DESC, a.seq DESC
	`, query.CourierID().Bytes(), assignment.Pending.String(), h.now()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID uuid.UUID
			resp        PendingAssignmentResponse
			timeoutAt   sql.NullTime
		)

		if err = rows.Scan(&id, &orderID, &resp.OrderSummary, &resp.Type, &resp.AssignedAt, &timeoutAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.AssignedAt = resp.AssignedAt.UTC()
		if timeoutAt.Valid {
			t := timeoutAt.Time.UTC()
			resp.TimeoutAt = &t
		}

		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
