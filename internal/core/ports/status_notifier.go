package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StatusNotifier publishes status-change events to interested parties
// (customer notification, analytics). It is strictly fire-and-forget:
// handlers invoke it after the transaction commits, and a notification
// failure must never roll back or fail the state transition itself.
type StatusNotifier interface {
	// NotifyOrderStatusChanged announces that an order reached a new status.
	NotifyOrderStatusChanged(ctx context.Context, orderID kernel.UUID, status order.Status) error

	// NotifyDeliveryStatusChanged announces that a delivery reached a new status.
	NotifyDeliveryStatusChanged(ctx context.Context, deliveryID kernel.UUID, status delivery.Status) error
}
