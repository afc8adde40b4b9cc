package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderAssignmentsQueryHandler reads the assignment ledger of an order,
// newest attempt first. An unknown order yields an empty list.
type GetOrderAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderAssignmentsQueryHandler(db *gorm.DB) GetOrderAssignmentsQueryHandler {
	return GetOrderAssignmentsQueryHandler{db: db}
}

func (h GetOrderAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAssignmentsQuery,
) ([]AssignmentHistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]AssignmentHistoryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			status,
			assignment_type,
			assigned_at,
			response_at,
			timeout_at,
			COALESCE(rejection_reason, '')
		FROM assignments
		WHERE order_id = ?
		ORDER BY seq DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, courierID         uuid.UUID
			resp                  AssignmentHistoryResponse
			responseAt, timeoutAt sql.NullTime
		)

		err = rows.Scan(
			&id,
			&courierID,
			&resp.Status,
			&resp.Type,
			&resp.AssignedAt,
			&responseAt,
			&timeoutAt,
			&resp.RejectionReason,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
			return nil, err
		}
		resp.AssignedAt = resp.AssignedAt.UTC()
		resp.ResponseAt = nullTime(responseAt)
		resp.TimeoutAt = nullTime(timeoutAt)

		history = append(history, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
