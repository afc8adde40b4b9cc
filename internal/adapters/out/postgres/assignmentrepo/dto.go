// Package assignmentrepo stores the assignment ledger.
//
// The table carries a partial unique index on order_id for PENDING rows,
// which backs the one-pending-per-order rule even if two transactions race
// past the order lock. Status changes are conditional on the row still being
// PENDING.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq             int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID       uuid.UUID  `gorm:"type:uuid;not null;index:ix_assignments_courier_status,priority:1"`
	Status          string     `gorm:"type:varchar(16);not null;index:ix_assignments_courier_status,priority:2;index:ix_assignments_status_timeout,priority:1"`
	AssignmentType  string     `gorm:"type:varchar(16);not null"`
	AssignedAt      time.Time  `gorm:"not null"`
	ResponseAt      *time.Time `gorm:""`
	TimeoutAt       *time.Time `gorm:"index:ix_assignments_status_timeout,priority:2"`
	RejectionReason *string    `gorm:"type:text"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:             a.ID().Bytes(),
		OrderID:        a.OrderID().Bytes(),
		CourierID:      a.CourierID().Bytes(),
		Status:         a.Status().String(),
		AssignmentType: a.Type().String(),
		AssignedAt:     a.AssignedAt().UTC(),
		ResponseAt:     utcPtr(a.ResponseAt()),
	}

	if deadline, ok := a.TimeoutAt(); ok {
		utc := deadline.UTC()
		dto.TimeoutAt = &utc
	}
	if reason := a.RejectionReason(); reason != "" {
		dto.RejectionReason = &reason
	}

	return dto
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	var reason string
	if dto.RejectionReason != nil {
		reason = *dto.RejectionReason
	}

	return assignment.RestoreAssignment(
		id, orderID, courierID,
		assignment.Status(dto.Status),
		assignment.Type(dto.AssignmentType),
		dto.AssignedAt.UTC(),
		utcPtr(dto.ResponseAt),
		utcPtr(dto.TimeoutAt),
		reason,
	)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
