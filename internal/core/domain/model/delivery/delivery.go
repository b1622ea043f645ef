// Package delivery implements the delivery side of the fulfillment
// workflow: the Delivery aggregate paired 1:1 with an order, and the
// data-driven state machine governing the delivery lifecycle (pending,
// shipping, delivered, cancelled).
package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is the aggregate root for the delivery side of the fulfillment
// workflow. A delivery is created once its owning order reaches a shippable
// state and tracks the physical shipment from there.
//
// Invariants mirror the Order aggregate: status changes only through Apply,
// lifecycle timestamps are set at most once, Delivered and Cancelled are
// absorbing, and the version field backs optimistic concurrency.
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID
	status  Status
	version int64

	shippingStartedAt *time.Time
	deliveredAt       *time.Time
	cancelledAt       *time.Time

	isConstructed bool
}

// NewDelivery creates a new delivery for the given order, in the Pending
// status.
func NewDelivery(id kernel.UUID, orderID kernel.UUID) (*Delivery, error) {
	return newDelivery(id, orderID, Pending)
}

func newDelivery(id, orderID kernel.UUID, status Status) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		status:        status,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistence.
// An out-of-enum status loaded from storage is a hard error.
func RestoreDelivery(
	id, orderID kernel.UUID,
	status Status,
	version int64,
	shippingStartedAt, deliveredAt, cancelledAt *time.Time,
) (*Delivery, error) {
	d, err := newDelivery(id, orderID, status)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	d.version = version
	d.shippingStartedAt = shippingStartedAt
	d.deliveredAt = deliveredAt
	d.cancelledAt = cancelledAt
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the owning order.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// Version returns the optimistic-concurrency version loaded from storage.
func (d *Delivery) Version() int64 {
	return d.version
}

// ShippingStartedAt returns when shipping began, or nil.
func (d *Delivery) ShippingStartedAt() *time.Time { return d.shippingStartedAt }

// DeliveredAt returns when the parcel was delivered, or nil.
func (d *Delivery) DeliveredAt() *time.Time { return d.deliveredAt }

// CancelledAt returns when the delivery was cancelled, or nil.
func (d *Delivery) CancelledAt() *time.Time { return d.cancelledAt }

// Rules returns the transition-rule set bound to the delivery's current
// status.
func (d *Delivery) Rules() Ruleset {
	rules, err := RulesFor(d.status)
	if err != nil {
		// Unreachable for a constructed delivery.
		panic(err)
	}
	return rules
}

// Apply is the single generic executor of the delivery state machine.
// Invalid transitions are reported as a failure result with the delivery
// untouched; entering Shipping sets shippingStartedAt, Delivered sets
// deliveredAt, and Cancelled sets cancelledAt, each exactly once.
func (d *Delivery) Apply(action Action) kernel.TransitionResult {
	next, ok := d.Rules().Next(action)
	if !ok {
		return kernel.TransitionRejected(fmt.Sprintf(
			"action %s is not allowed for delivery %s in status %s", action, d.id, d.status))
	}

	d.status = next
	now := time.Now().UTC()
	switch next {
	case Shipping:
		d.shippingStartedAt = &now
	case Delivered:
		d.deliveredAt = &now
	case Cancelled:
		d.cancelledAt = &now
	}

	return kernel.TransitionApplied(fmt.Sprintf("delivery %s is now %s", d.id, next))
}
