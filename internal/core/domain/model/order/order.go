package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder, NewOrderAwaitingPayment, or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is constructed without
	// line items.
	ErrOrderHasNoItems = errors.New("Order must contain at least one line item")
)

// Order is the aggregate root for the order side of the fulfillment
// workflow. Its status is mutated only through Apply, which enforces the
// transition table and records the lifecycle timestamps; there is no way to
// assign a status directly.
//
// Invariants:
//   - Must have a valid unique identifier and at least one line item
//   - Each lifecycle timestamp is set at most once, on the transition that
//     enters the corresponding status
//   - At most one of deliveredAt/cancelledAt is non-nil, matching the
//     terminal status
//   - Delivered and Cancelled are absorbing: Apply rejects every action
//
// The version field supports optimistic concurrency: two racing
// read-modify-write cycles against the same order cannot both persist.
type Order struct {
	id      kernel.UUID
	items   []Item
	status  Status
	version int64

	processedAt *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	isConstructed bool
}

// NewOrder creates a new order in the Pending status.
// Use NewOrderAwaitingPayment when payment confirmation is still outstanding.
func NewOrder(id kernel.UUID, items []Item) (*Order, error) {
	return newOrder(id, items, Pending)
}

// NewOrderAwaitingPayment creates a new order in the AwaitingPayment status,
// to be confirmed (ActionPending) or cancelled by the payment outcome.
func NewOrderAwaitingPayment(id kernel.UUID, items []Item) (*Order, error) {
	return newOrder(id, items, AwaitingPayment)
}

func newOrder(id kernel.UUID, items []Item, status Status) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	return &Order{
		id:            id,
		items:         append([]Item(nil), items...),
		status:        status,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
// The status must be a valid enum value; an out-of-enum status loaded from
// storage is a hard error, not coerced to pending.
func RestoreOrder(
	id kernel.UUID,
	items []Item,
	status Status,
	version int64,
	processedAt, shippedAt, deliveredAt, cancelledAt *time.Time,
) (*Order, error) {
	o, err := newOrder(id, items, status)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.version = version
	o.processedAt = processedAt
	o.shippedAt = shippedAt
	o.deliveredAt = deliveredAt
	o.cancelledAt = cancelledAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Called by repositories before persisting.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic-concurrency version loaded from storage.
func (o *Order) Version() int64 {
	return o.version
}

// ProcessedAt returns when the order entered processing, or nil.
func (o *Order) ProcessedAt() *time.Time { return o.processedAt }

// ShippedAt returns when the order was shipped, or nil.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Rules returns the transition-rule set bound to the order's current status.
func (o *Order) Rules() Ruleset {
	rules, err := RulesFor(o.status)
	if err != nil {
		// Unreachable for a constructed order: constructors and Apply only
		// ever leave valid statuses behind.
		panic(err)
	}
	return rules
}

// Apply is the single generic executor of the order state machine.
// It looks the (current status, action) pair up in the transition table,
// and either performs the transition with its side effects or reports a
// failure result leaving the order untouched. Invalid transitions are a
// business outcome, not an error.
//
// Side effects applied exactly once, on the transition that enters the
// status: Processing sets processedAt, Shipped sets shippedAt, Delivered
// sets deliveredAt, Cancelled sets cancelledAt. Stock restoration on
// cancellation is the command layer's duty; the absorbing-state rule
// guarantees it cannot be triggered twice because a second cancel never
// succeeds.
func (o *Order) Apply(action Action) kernel.TransitionResult {
	next, ok := o.Rules().Next(action)
	if !ok {
		return kernel.TransitionRejected(fmt.Sprintf(
			"action %s is not allowed for order %s in status %s", action, o.id, o.status))
	}

	o.status = next
	now := time.Now().UTC()
	switch next {
	case Processing:
		o.processedAt = &now
	case Shipped:
		o.shippedAt = &now
	case Delivered:
		o.deliveredAt = &now
	case Cancelled:
		o.cancelledAt = &now
	}

	return kernel.TransitionApplied(fmt.Sprintf("order %s is now %s", o.id, next))
}
