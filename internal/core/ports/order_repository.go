package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The write carries the aggregate's loaded version; a stale version is
	// rejected with errs.ErrVersionConflict, which serializes concurrent
	// read-modify-write cycles against the same order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when the id does not resolve.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
