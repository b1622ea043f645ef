package notifier

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// LogStatusNotifier writes status-change events to the structured log.
// Used when no Kafka brokers are configured, so local development and tests
// run without a broker.
type LogStatusNotifier struct {
	logger *slog.Logger
}

// NewLogStatusNotifier creates a log-backed notifier.
func NewLogStatusNotifier(logger *slog.Logger) *LogStatusNotifier {
	return &LogStatusNotifier{logger: logger}
}

// NotifyOrderStatusChanged logs an order status event.
func (n *LogStatusNotifier) NotifyOrderStatusChanged(
	_ context.Context,
	orderID kernel.UUID,
	status order.Status,
) error {
	n.logger.Info("order status changed",
		"order_id", orderID.String(), "status", status.String())
	return nil
}

// NotifyDeliveryStatusChanged logs a delivery status event.
func (n *LogStatusNotifier) NotifyDeliveryStatusChanged(
	_ context.Context,
	deliveryID kernel.UUID,
	status delivery.Status,
) error {
	n.logger.Info("delivery status changed",
		"delivery_id", deliveryID.String(), "status", status.String())
	return nil
}
