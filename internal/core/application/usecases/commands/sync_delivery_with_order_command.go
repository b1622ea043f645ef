package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncDeliveryWithOrderCommandIsNotConstructed = errors.New(
	"SyncDeliveryWithOrderCommand must be created via NewSyncDeliveryWithOrderCommand constructor",
)

// SyncDeliveryWithOrderCommand requests bringing a delivery's status in
// line with the given order status. Mutates the delivery side only.
type SyncDeliveryWithOrderCommand struct {
	deliveryID  kernel.UUID
	orderStatus order.Status

	guard guard.ConstructorGuard
}

// NewSyncDeliveryWithOrderCommand creates a validated command.
// An out-of-enum order status is rejected here, before any state is touched.
func NewSyncDeliveryWithOrderCommand(
	deliveryID kernel.UUID,
	orderStatus order.Status,
) (SyncDeliveryWithOrderCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return SyncDeliveryWithOrderCommand{}, err
	}
	if err := orderStatus.Validate(); err != nil {
		return SyncDeliveryWithOrderCommand{}, err
	}

	return SyncDeliveryWithOrderCommand{
		deliveryID:  deliveryID,
		orderStatus: orderStatus,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery whose status should follow the order.
func (c *SyncDeliveryWithOrderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderStatus returns the order status to synchronize towards.
func (c *SyncDeliveryWithOrderCommand) OrderStatus() order.Status {
	return c.orderStatus
}

// Validate ensures the command was created through the constructor.
func (c *SyncDeliveryWithOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncDeliveryWithOrderCommandIsNotConstructed,
	)
}
