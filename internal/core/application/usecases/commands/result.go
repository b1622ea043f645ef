package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Result is the outcome every fulfillment command reports to its caller.
//
// Success=false with a message is the normal shape of a rejected business
// operation (invalid transition, unmapped status); infrastructure failures
// travel separately as errors. Partial marks a multi-hop synchronization
// that failed after its first hop was applied: the applied sub-transitions
// were committed and the pair now needs reconciliation.
type Result struct {
	Success bool
	Partial bool
	Message string
}

func resultOK(message string) Result {
	return Result{Success: true, Message: message}
}

func resultFailed(message string) Result {
	return Result{Success: false, Message: message}
}

// restoreStock credits every line item's reserved quantity back to product
// stock. Called exactly once, on the transition that enters cancelled; the
// absorbing-state rule makes a repeated cancel a no-op before this runs.
func restoreStock(ctx context.Context, inventory ports.InventoryRepository, o *order.Order) error {
	for _, item := range o.Items() {
		if err := inventory.RestoreStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
