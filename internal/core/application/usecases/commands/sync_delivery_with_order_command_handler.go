package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// SyncDeliveryWithOrderCommandHandler drives a delivery towards the status
// implied by an order status. Idempotent for a pair that is already
// consistent.
type SyncDeliveryWithOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewSyncDeliveryWithOrderCommandHandler creates a handler for delivery-side synchronization.
func NewSyncDeliveryWithOrderCommandHandler(uowFactory DeliveryUoWFactory) SyncDeliveryWithOrderCommandHandler {
	return SyncDeliveryWithOrderCommandHandler{uowFactory: uowFactory}
}

// Handle loads the delivery, computes the hop plan towards the order's
// mapped status, and persists whatever hops applied, reporting a mid-plan
// failure as partial.
func (h SyncDeliveryWithOrderCommandHandler) Handle(
	ctx context.Context,
	command SyncDeliveryWithOrderCommand,
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

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return Result{}, err
	}

	syncRes := services.NewStatusSynchronizer().SyncDeliveryWithOrder(d, command.OrderStatus())
	if syncRes.HopsApplied == 0 {
		return Result{
			Success: syncRes.Success,
			Partial: syncRes.Partial,
			Message: syncRes.Message,
		}, nil
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
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
