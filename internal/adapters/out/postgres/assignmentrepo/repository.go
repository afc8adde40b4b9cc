package assignmentrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pendingIndexName = "ux_assignments_order_pending"

// CreatePendingIndex adds the partial unique index that allows a single
// PENDING assignment per order. AutoMigrate cannot express it.
func CreatePendingIndex(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON assignments (order_id) WHERE status = '%s'",
		pendingIndexName, assignment.Pending,
	)).Error
}

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Status() != assignment.Pending {
		return fmt.Errorf("%w: new assignment is %s", assignment.ErrInvalidAssignmentStatus, a.Status())
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: fmt.Sprintf("status = '%s'", assignment.Pending)},
			}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrPendingAssignmentExists
	}

	return nil
}

func (r *GormAssignmentRepository) Resolve(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.Status().IsTerminal() {
		return fmt.Errorf("%w: cannot resolve to %s", assignment.ErrInvalidAssignmentStatus, a.Status())
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, assignment.Pending.String()).
		Updates(map[string]any{
			"status":           dto.Status,
			"response_at":      dto.ResponseAt,
			"rejection_reason": dto.RejectionReason,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrAssignmentAlreadyResolved
	}

	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAssignmentRepository) FindPendingByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return r.findOne(r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), assignment.Pending.String()))
}

func (r *GormAssignmentRepository) FindLatestByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return r.findOne(r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("seq DESC"))
}

func (r *GormAssignmentRepository) FindLatestUnsuccessfulByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return r.findOne(r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(),
			[]string{assignment.Rejected.String(), assignment.Timeout.String()}).
		Order("seq DESC"))
}

func (r *GormAssignmentRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND timeout_at IS NOT NULL AND timeout_at <= ?", assignment.Pending.String(), now.UTC()).
		Order("timeout_at, seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}

func (r *GormAssignmentRepository) get(q *gorm.DB, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) findOne(q *gorm.DB) (*assignment.Assignment, error) {
	var dto AssignmentDTO
	if err := q.Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
