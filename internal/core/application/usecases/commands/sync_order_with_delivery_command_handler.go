package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// SyncOrderWithDeliveryCommandHandler drives an order towards the status
// implied by a delivery status. The command is idempotent: a pair that is
// already consistent yields a successful no-op.
type SyncOrderWithDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSyncOrderWithDeliveryCommandHandler creates a handler for order-side synchronization.
func NewSyncOrderWithDeliveryCommandHandler(uowFactory OrderUoWFactory) SyncOrderWithDeliveryCommandHandler {
	return SyncOrderWithDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, computes the hop plan towards the delivery's
// mapped status, and persists whatever hops applied. A plan that fails
// after the first hop is committed anyway and reported as partial; the
// applied hops are real transitions and the reconciliation job picks the
// pair up again. Synchronization into cancelled credits stock back within
// the same transaction.
func (h SyncOrderWithDeliveryCommandHandler) Handle(
	ctx context.Context,
	command SyncOrderWithDeliveryCommand,
) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return Result{}, err
	}

	prev := o.Status()
	syncRes := services.NewStatusSynchronizer().SyncOrderWithDelivery(o, command.DeliveryStatus())
	if syncRes.HopsApplied == 0 {
		return Result{
			Success: syncRes.Success,
			Partial: syncRes.Partial,
			Message: syncRes.Message,
		}, nil
	}

	if o.Status() == order.Cancelled && prev != order.Cancelled {
		if err = restoreStock(ctx, uow.InventoryRepository(), o); err != nil {
			return Result{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return Result{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	return Result{
		Success: syncRes.Success,
		Partial: syncRes.Partial,
		Message: syncRes.Message,
	}, nil
}
