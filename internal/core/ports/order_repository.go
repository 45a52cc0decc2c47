package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists the order and its items atomically. A duplicate order
	// number yields errs.ConflictError with ParamName "orderNumber".
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsNumber is the pre-check before insert; the unique index stays the authority.
	ExistsNumber(ctx context.Context, number order.Number) (bool, error)

	// UpdateStatus writes status, cancel flag, reason and updatedAt only if the
	// stored status still equals expected. Otherwise it returns errs.ConflictError.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
