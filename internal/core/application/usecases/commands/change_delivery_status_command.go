package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand requests a single action on the delivery
// state machine: ship, deliver, or cancel. The owning order is
// synchronized in the same transaction.
type ChangeDeliveryStatusCommand struct {
	deliveryID kernel.UUID
	action     delivery.Action

	guard guard.ConstructorGuard
}

// NewChangeDeliveryStatusCommand creates a validated command.
func NewChangeDeliveryStatusCommand(deliveryID kernel.UUID, action delivery.Action) (ChangeDeliveryStatusCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}
	if err := action.Validate(); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}

	return ChangeDeliveryStatusCommand{
		deliveryID: deliveryID,
		action:     action,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the target delivery's identifier.
func (c *ChangeDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Action returns the requested state-machine action.
func (c *ChangeDeliveryStatusCommand) Action() delivery.Action {
	return c.action
}

// Validate ensures the command was created through the constructor.
func (c *ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(
		ErrChangeDeliveryStatusCommandIsNotConstructed,
	)
}
