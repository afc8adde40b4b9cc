package rosterrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roster"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOnDutyRoster implements ports.OnDutyRoster using GORM.
type GormOnDutyRoster struct {
	db *gorm.DB
}

func NewGormOnDutyRoster(db *gorm.DB) *GormOnDutyRoster {
	return &GormOnDutyRoster{db: db}
}

// CreateSequence creates the tie-break sequence. It is called by the
// schema migration before AutoMigrate touches the table.
func CreateSequence(db *gorm.DB) error {
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS " + seqName).Error
}

func (r *GormOnDutyRoster) Enqueue(ctx context.Context, entry roster.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).
		Model(&OnDutyCourierDTO{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "courier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"on_duty_since", "seq", "shift_ref"}),
		}).
		Create(map[string]any{
			"courier_id":    dto.CourierID,
			"on_duty_since": dto.OnDutySince,
			"seq":           gorm.Expr("nextval(?)", seqName),
			"shift_ref":     dto.ShiftRef,
		}).Error
}

func (r *GormOnDutyRoster) Dequeue(ctx context.Context, exclude ...kernel.UUID) (kernel.UUID, error) {
	q := r.db.WithContext(ctx).Model(&OnDutyCourierDTO{})
	if len(exclude) > 0 {
		ids := make([]any, 0, len(exclude))
		for _, id := range exclude {
			ids = append(ids, id.Bytes())
		}
		q = q.Where("courier_id NOT IN ?", ids)
	}

	var dto OnDutyCourierDTO
	if err := q.Order("on_duty_since, seq").Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, ports.ErrNoCourierAvailable
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.CourierID[:])
}

func (r *GormOnDutyRoster) Requeue(ctx context.Context, courierID kernel.UUID, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OnDutyCourierDTO{}).
		Where("courier_id = ?", courierID.Bytes()).
		Updates(map[string]any{
			"on_duty_since": now.UTC(),
			"seq":           gorm.Expr("nextval(?)", seqName),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("on-duty courier", courierID.String())
	}

	return nil
}

func (r *GormOnDutyRoster) Remove(ctx context.Context, courierID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Delete(&OnDutyCourierDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("on-duty courier", courierID.String())
	}

	return nil
}

func (r *GormOnDutyRoster) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OnDutyCourierDTO{}).Count(&n).Error
	return n, err
}

func (r *GormOnDutyRoster) List(ctx context.Context) ([]roster.Entry, error) {
	var dtos []OnDutyCourierDTO
	if err := r.db.WithContext(ctx).Order("on_duty_since, seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]roster.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
