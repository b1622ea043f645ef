package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSyncOrderWithDeliveryCommandIsNotConstructed = errors.New(
	"SyncOrderWithDeliveryCommand must be created via NewSyncOrderWithDeliveryCommand constructor",
)

// SyncOrderWithDeliveryCommand requests bringing an order's status in line
// with the given delivery status. The delivery status arrives with the
// command (from a carrier callback or from the reconciliation scan), so the
// command mutates the order side only.
type SyncOrderWithDeliveryCommand struct {
	orderID        kernel.UUID
	deliveryStatus delivery.Status

	guard guard.ConstructorGuard
}

// NewSyncOrderWithDeliveryCommand creates a validated command.
// An out-of-enum delivery status is rejected here, before any state is touched.
func NewSyncOrderWithDeliveryCommand(
	orderID kernel.UUID,
	deliveryStatus delivery.Status,
) (SyncOrderWithDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SyncOrderWithDeliveryCommand{}, err
	}
	if err := deliveryStatus.Validate(); err != nil {
		return SyncOrderWithDeliveryCommand{}, err
	}

	return SyncOrderWithDeliveryCommand{
		orderID:        orderID,
		deliveryStatus: deliveryStatus,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose status should follow the delivery.
func (c *SyncOrderWithDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryStatus returns the delivery status to synchronize towards.
func (c *SyncOrderWithDeliveryCommand) DeliveryStatus() delivery.Status {
	return c.deliveryStatus
}

// Validate ensures the command was created through the constructor.
func (c *SyncOrderWithDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncOrderWithDeliveryCommandIsNotConstructed,
	)
}
