package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/rosterrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the dispatch tables.
func Migrate(db *gorm.DB) error {
	if err := rosterrepo.CreateSequence(db); err != nil {
		return fmt.Errorf("roster sequence: %w", err)
	}

	if err := db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&rosterrepo.OnDutyCourierDTO{},
		&assignmentrepo.AssignmentDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := assignmentrepo.CreatePendingIndex(db); err != nil {
		return fmt.Errorf("pending assignment index: %w", err)
	}

	return nil
}
