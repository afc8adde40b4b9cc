// Package rosterrepo stores the on-duty rotation in the on_duty_couriers table.
//
// Rotation order is (on_duty_since, seq). seq is a sequence value drawn on
// every enqueue and requeue, so couriers with the same timestamp keep the
// order in which they joined or returned to the tail.
package rosterrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roster"

	"github.com/google/uuid"
)

const seqName = "on_duty_couriers_seq"

type OnDutyCourierDTO struct {
	CourierID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OnDutySince time.Time `gorm:"not null;index:ix_on_duty_rotation,priority:1"`
	Seq         int64     `gorm:"not null;index:ix_on_duty_rotation,priority:2"`
	ShiftRef    *string   `gorm:"type:varchar(64)"`
}

func (OnDutyCourierDTO) TableName() string {
	return "on_duty_couriers"
}

func fromDomain(e roster.Entry) OnDutyCourierDTO {
	var shiftRef *string
	if ref := e.ShiftRef(); ref != "" {
		shiftRef = &ref
	}

	return OnDutyCourierDTO{
		CourierID:   e.CourierID().Bytes(),
		OnDutySince: e.OnDutySince().UTC(),
		ShiftRef:    shiftRef,
	}
}

func toDomain(dto OnDutyCourierDTO) (roster.Entry, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return roster.Entry{}, err
	}

	var shiftRef string
	if dto.ShiftRef != nil {
		shiftRef = *dto.ShiftRef
	}

	return roster.NewEntry(courierID, dto.OnDutySince.UTC(), shiftRef)
}
