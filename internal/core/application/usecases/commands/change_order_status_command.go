package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a single action on the order state
// machine: confirm payment, process, ship, deliver, cancel, or await.
// The paired delivery is synchronized in the same transaction.
//
// Example:
//
//	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.ActionCancel)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	action  order.Action

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated command.
// Both the order id and the action must be well-formed; whether the action
// is permitted from the order's current status is decided by the state
// machine at handling time.
func NewChangeOrderStatusCommand(orderID kernel.UUID, action order.Action) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := action.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's identifier.
func (c *ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested state-machine action.
func (c *ChangeOrderStatusCommand) Action() order.Action {
	return c.action
}

// Validate ensures the command was created through the constructor.
func (c *ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(
		ErrChangeOrderStatusCommandIsNotConstructed,
	)
}
