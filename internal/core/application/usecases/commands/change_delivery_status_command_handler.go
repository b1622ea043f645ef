package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ChangeDeliveryStatusCommandHandler applies an action to a delivery and
// propagates the change to the owning order in the same transaction.
// A delivery cancellation cascades into an order cancellation, which in
// turn credits the reserved stock back.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.StatusNotifier
}

// NewChangeDeliveryStatusCommandHandler creates a handler for delivery status changes.
func NewChangeDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.StatusNotifier,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change. The delivery transition and the order
// synchronization commit together; a synchronization that fails midway is
// still committed for the hops that applied and reported as partial, so the
// reconciliation job can finish the pair.
func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeDeliveryStatusCommand,
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

	res := d.Apply(command.Action())
	if !res.Success {
		return resultFailed(res.Message), nil
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return Result{}, err
	}

	o, syncRes, err := h.syncOwningOrder(ctx, uow, d)
	if err != nil {
		return Result{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	h.notifyTerminal(ctx, o, d)

	message := res.Message
	if syncRes.Message != "" {
		message = fmt.Sprintf("%s; %s", message, syncRes.Message)
	}
	return Result{Success: true, Partial: syncRes.Partial, Message: message}, nil
}

// syncOwningOrder moves the owning order towards the delivery's new status.
// Cancellation propagated to the order restores stock within the same
// transaction.
func (h ChangeDeliveryStatusCommandHandler) syncOwningOrder(
	ctx context.Context,
	uow UoW,
	d *delivery.Delivery,
) (*order.Order, services.SyncResult, error) {
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, d.OrderID())
	if err != nil {
		return nil, services.SyncResult{}, err
	}

	prev := o.Status()
	syncRes := services.NewStatusSynchronizer().SyncOrderWithDelivery(o, d.Status())
	if syncRes.HopsApplied == 0 {
		return o, syncRes, nil
	}

	if o.Status() == order.Cancelled && prev != order.Cancelled {
		if err = restoreStock(ctx, uow.InventoryRepository(), o); err != nil {
			return nil, services.SyncResult{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, services.SyncResult{}, err
	}
	return o, syncRes, nil
}

func (h ChangeDeliveryStatusCommandHandler) notifyTerminal(
	ctx context.Context,
	o *order.Order,
	d *delivery.Delivery,
) {
	if d.Status().IsTerminal() {
		_ = h.notifier.NotifyDeliveryStatusChanged(ctx, d.ID(), d.Status())
	}
	if o != nil && o.Status().IsTerminal() {
		_ = h.notifier.NotifyOrderStatusChanged(ctx, o.ID(), o.Status())
	}
}
