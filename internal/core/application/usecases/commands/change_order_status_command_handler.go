package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies an action to an order and keeps
// the paired delivery consistent, all within one transaction.
//
// Responsibilities beyond the bare transition:
//   - stock restoration when the order enters cancelled
//   - creating the paired Delivery (pending) when the order enters
//     processing and none exists yet
//   - synchronizing an existing delivery with the order's new status
//   - fire-and-forget notification after terminal transitions
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.StatusNotifier
}

// NewChangeOrderStatusCommandHandler creates a handler for order status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.StatusNotifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change.
// An action the state machine rejects yields a failure Result with the
// order untouched; infrastructure problems (order not found, stale version,
// storage errors) are returned as errors. The notification hook runs after
// commit and can never roll the transition back.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeOrderStatusCommand,
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

	res := o.Apply(command.Action())
	if !res.Success {
		return resultFailed(res.Message), nil
	}

	if o.Status() == order.Cancelled {
		if err = restoreStock(ctx, uow.InventoryRepository(), o); err != nil {
			return Result{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return Result{}, err
	}

	d, syncMessage, err := h.syncPairedDelivery(ctx, uow, o)
	if err != nil {
		return Result{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	h.notifyTerminal(ctx, o, d)

	message := res.Message
	if syncMessage != "" {
		message = fmt.Sprintf("%s; %s", message, syncMessage)
	}
	return resultOK(message), nil
}

// syncPairedDelivery creates or synchronizes the delivery that tracks the
// order. A missing delivery is only created once the order becomes
// shippable (enters processing). Synchronization failures are reported in
// the result message, not as errors: the order transition stands and the
// reconciliation job retries the pair.
func (h ChangeOrderStatusCommandHandler) syncPairedDelivery(
	ctx context.Context,
	uow UoW,
	o *order.Order,
) (*delivery.Delivery, string, error) {
	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.GetByOrderID(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		if o.Status() != order.Processing {
			return nil, "", nil
		}

		d, err = delivery.NewDelivery(kernel.NewUUID(), o.ID())
		if err != nil {
			return nil, "", err
		}
		if err = deliveryRepo.Add(ctx, d); err != nil {
			return nil, "", err
		}
		return d, fmt.Sprintf("delivery %s created", d.ID()), nil
	}
	if err != nil {
		return nil, "", err
	}

	syncRes := services.NewStatusSynchronizer().SyncDeliveryWithOrder(d, o.Status())
	if syncRes.HopsApplied > 0 {
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return nil, "", err
		}
	}
	return d, syncRes.Message, nil
}

// notifyTerminal fires the notification hook for entities that just reached
// a terminal status. Failures are dropped: notification must never undo a
// committed transition.
func (h ChangeOrderStatusCommandHandler) notifyTerminal(
	ctx context.Context,
	o *order.Order,
	d *delivery.Delivery,
) {
	if o.Status().IsTerminal() {
		_ = h.notifier.NotifyOrderStatusChanged(ctx, o.ID(), o.Status())
	}
	if d != nil && d.Status().IsTerminal() {
		_ = h.notifier.NotifyDeliveryStatusChanged(ctx, d.ID(), d.Status())
	}
}
