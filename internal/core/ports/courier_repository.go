package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}
