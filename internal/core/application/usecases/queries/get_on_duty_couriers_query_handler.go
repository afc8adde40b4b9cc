package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOnDutyCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetOnDutyCouriersQueryHandler(db *gorm.DB) GetOnDutyCouriersQueryHandler {
	return GetOnDutyCouriersQueryHandler{db: db}
}

// Handle lists on-duty couriers in the order the dispatcher will offer them
// orders. Entries whose courier is unknown are skipped.
func (h GetOnDutyCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetOnDutyCouriersQuery,
) ([]OnDutyCourierResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]OnDutyCourierResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.courier_id,
			c.name,
			r.on_duty_since,
			COALESCE(r.shift_ref, '')
		FROM on_duty_couriers r
		JOIN couriers c ON c.id = r.courier_id
		ORDER BY r.on_duty_since, r.seq
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			resp OnDutyCourierResponse
		)

		if err = rows.Scan(&id, &resp.Name, &resp.OnDutySince, &resp.ShiftRef); err != nil {
			return nil, err
		}

		if resp.CourierID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.OnDutySince = resp.OnDutySince.UTC()

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
