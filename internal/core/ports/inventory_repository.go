package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository adjusts product stock levels. The fulfillment core
// consumes it for exactly one purpose: crediting reserved quantities back
// when an order is cancelled.
type InventoryRepository interface {
	// RestoreStock adds quantity back to the product's available stock.
	// Invoked once per line item on order cancellation; the absorbing-state
	// rule of the order machine guarantees it is never invoked twice for
	// the same cancellation.
	RestoreStock(ctx context.Context, productID kernel.UUID, quantity int) error
}
