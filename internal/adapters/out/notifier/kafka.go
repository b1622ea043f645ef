// Package notifier publishes status-change events for downstream consumers
// (customer notification, analytics). Implementations are fire-and-forget:
// the command layer calls them after commit and drops their errors.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

const (
	orderStatusTopic    = "fulfillment.order-status"
	deliveryStatusTopic = "fulfillment.delivery-status"
)

// statusChangedEvent is the wire format for both topics.
type statusChangedEvent struct {
	EntityID   string    `json:"entity_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaStatusNotifier publishes status-change events to Kafka via a
// synchronous sarama producer. Events are keyed by entity id so all
// changes for one entity land on the same partition, in order.
type KafkaStatusNotifier struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewKafkaStatusNotifier creates a notifier connected to the given brokers.
func NewKafkaStatusNotifier(brokers []string, logger *slog.Logger) (*KafkaStatusNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaStatusNotifier{
		producer: producer,
		logger:   logger,
	}, nil
}

// NotifyOrderStatusChanged publishes an order status event.
func (n *KafkaStatusNotifier) NotifyOrderStatusChanged(
	_ context.Context,
	orderID kernel.UUID,
	status order.Status,
) error {
	return n.publish(orderStatusTopic, orderID, status.String())
}

// NotifyDeliveryStatusChanged publishes a delivery status event.
func (n *KafkaStatusNotifier) NotifyDeliveryStatusChanged(
	_ context.Context,
	deliveryID kernel.UUID,
	status delivery.Status,
) error {
	return n.publish(deliveryStatusTopic, deliveryID, status.String())
}

func (n *KafkaStatusNotifier) publish(topic string, entityID kernel.UUID, status string) error {
	payload, err := json.Marshal(statusChangedEvent{
		EntityID:   entityID.String(),
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(entityID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		n.logger.Error("failed to publish status event",
			"topic", topic, "entity_id", entityID.String(), "error", err)
		return err
	}

	n.logger.Debug("status event published",
		"topic", topic, "partition", partition, "offset", offset)
	return nil
}

// Close shuts the underlying producer down.
func (n *KafkaStatusNotifier) Close() error {
	return n.producer.Close()
}
