package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
)

// SyncResult is the outcome of a synchronization attempt.
//
// Partial distinguishes the failure mode that matters to callers: a
// multi-hop sequence whose first hop was applied but whose later hop was
// rejected. Hops already applied are never rolled back here; the caller
// owns the aggregate and decides whether to persist the applied hops (the
// reconciliation job will retry the remainder) or discard them.
type SyncResult struct {
	Success bool
	Partial bool
	Message string

	// HopsApplied counts the sub-transitions actually performed on the
	// aggregate. Zero means the aggregate is untouched.
	HopsApplied int
}

func syncApplied(message string, hops int) SyncResult {
	return SyncResult{Success: true, Message: message, HopsApplied: hops}
}

func syncRejected(message string) SyncResult {
	return SyncResult{Success: false, Message: message}
}

func syncPartial(message string, hops int) SyncResult {
	return SyncResult{Success: false, Partial: true, Message: message, HopsApplied: hops}
}

// getDeliveryToOrderFinal maps a delivery status to the order status the
// owning order must end up in.
func getDeliveryToOrderFinal() map[delivery.Status]order.Status {
	return map[delivery.Status]order.Status{
		delivery.Pending:   order.Pending,
		delivery.Shipping:  order.Shipped,
		delivery.Delivered: order.Delivered,
		delivery.Cancelled: order.Cancelled,
	}
}

// getDeliveryToOrderInterim maps a delivery status to the order status the
// order must pass through when no direct transition to the final mapping
// exists. Statuses absent from the map need no interim hop.
func getDeliveryToOrderInterim() map[delivery.Status]order.Status {
	return map[delivery.Status]order.Status{
		delivery.Shipping: order.Processing,
	}
}

// getOrderToDelivery maps an order status to the delivery status the paired
// delivery must end up in.
func getOrderToDelivery() map[order.Status]delivery.Status {
	return map[order.Status]delivery.Status{
		order.Pending:         delivery.Pending,
		order.AwaitingPayment: delivery.Pending,
		order.Processing:      delivery.Pending,
		order.Shipped:         delivery.Shipping,
		order.Delivered:       delivery.Delivered,
		order.Cancelled:       delivery.Cancelled,
	}
}

// StatusSynchronizer is the domain service that keeps the paired order and
// delivery state machines mutually consistent. Given a status change already
// applied to one entity, it derives and applies the corresponding change(s)
// to the other, resolving interim hops where no direct transition exists.
//
// The synchronizer plans the complete hop sequence before mutating anything,
// is idempotent (a counterpart already at the mapped target is a successful
// no-op), and reports partial application distinctly so the caller can
// trigger reconciliation.
//
// Example usage:
//
//	sync := services.NewStatusSynchronizer()
//	res := sync.SyncOrderWithDelivery(o, delivery.Shipping)
//	if res.Partial {
//	    // first hop applied, second rejected: persist and reconcile later
//	}
type StatusSynchronizer struct{}

// NewStatusSynchronizer creates a new StatusSynchronizer instance.
func NewStatusSynchronizer() StatusSynchronizer {
	return StatusSynchronizer{}
}

// SyncOrderWithDelivery brings the order in line with a delivery status
// change.
//
// The order's target is the final mapping of the delivery status. An order
// already at the target is a successful no-op. When the delivery went to
// shipping while the order is still pending, the order takes the interim hop
// through processing before the final hop to shipped; otherwise a single
// direct transition is attempted.
func (s StatusSynchronizer) SyncOrderWithDelivery(o *order.Order, deliveryStatus delivery.Status) SyncResult {
	target, ok := getDeliveryToOrderFinal()[deliveryStatus]
	if !ok {
		return syncRejected(fmt.Sprintf(
			"no order status is mapped to delivery status %s", deliveryStatus))
	}

	if o.Status() == target {
		return syncApplied(fmt.Sprintf(
			"order %s is already %s, nothing to synchronize", o.ID(), target), 0)
	}

	hops, ok := planOrderHops(o.Rules(), deliveryStatus, target)
	if !ok {
		return syncRejected(fmt.Sprintf(
			"order %s cannot transition from %s to %s", o.ID(), o.Status(), target))
	}

	return applyOrderHops(o, hops, target)
}

// planOrderHops computes the ordered action list that takes the order from
// its current status to the target, before anything is mutated. A direct
// transition wins; otherwise the interim mapping for the delivery status is
// consulted for a two-hop route.
func planOrderHops(rules order.Ruleset, deliveryStatus delivery.Status, target order.Status) ([]order.Action, bool) {
	if action, ok := rules.ActionTo(target); ok {
		return []order.Action{action}, true
	}

	interim, ok := getDeliveryToOrderInterim()[deliveryStatus]
	if !ok {
		return nil, false
	}

	first, ok := rules.ActionTo(interim)
	if !ok {
		return nil, false
	}
	interimRules, err := order.RulesFor(interim)
	if err != nil {
		return nil, false
	}
	second, ok := interimRules.ActionTo(target)
	if !ok {
		return nil, false
	}

	return []order.Action{first, second}, true
}

func applyOrderHops(o *order.Order, hops []order.Action, target order.Status) SyncResult {
	for i, hop := range hops {
		res := o.Apply(hop)
		if res.Success {
			continue
		}
		if i == 0 {
			return syncRejected(res.Message)
		}
		return syncPartial(fmt.Sprintf(
			"partial synchronization of order %s: hop %d of %d (%s) failed: %s",
			o.ID(), i+1, len(hops), hop, res.Message), i)
	}

	return syncApplied(fmt.Sprintf(
		"order %s synchronized to %s in %d hop(s)", o.ID(), target, len(hops)), len(hops))
}

// SyncDeliveryWithOrder brings the delivery in line with an order status
// change.
//
// Two forced multi-hop routes exist: an order shipped while its delivery is
// still pending pushes the delivery straight into shipping, and an order
// delivered forces the delivery through shipping (when still pending) to
// delivered. Everything else must be a single transition permitted by the
// delivery flow, or the synchronization fails without mutation.
func (s StatusSynchronizer) SyncDeliveryWithOrder(d *delivery.Delivery, orderStatus order.Status) SyncResult {
	target, ok := getOrderToDelivery()[orderStatus]
	if !ok {
		return syncRejected(fmt.Sprintf(
			"no delivery status is mapped to order status %s", orderStatus))
	}

	if d.Status() == target {
		return syncApplied(fmt.Sprintf(
			"delivery %s is already %s, nothing to synchronize", d.ID(), target), 0)
	}

	hops, ok := planDeliveryHops(d.Status(), orderStatus, target)
	if !ok {
		return syncRejected(fmt.Sprintf(
			"delivery %s cannot transition from %s to %s", d.ID(), d.Status(), target))
	}

	return applyDeliveryHops(d, hops, target)
}

// planDeliveryHops computes the ordered action list for the delivery before
// anything is mutated.
func planDeliveryHops(current delivery.Status, orderStatus order.Status, target delivery.Status) ([]delivery.Action, bool) {
	// Order advanced past the point delivery tracking started.
	if orderStatus == order.Shipped && current == delivery.Pending {
		return []delivery.Action{delivery.ActionShip}, true
	}

	if orderStatus == order.Delivered {
		switch current {
		case delivery.Pending:
			return []delivery.Action{delivery.ActionShip, delivery.ActionDeliver}, true
		case delivery.Shipping:
			return []delivery.Action{delivery.ActionDeliver}, true
		}
	}

	rules, err := delivery.RulesFor(current)
	if err != nil {
		return nil, false
	}
	if action, ok := rules.ActionTo(target); ok {
		return []delivery.Action{action}, true
	}
	return nil, false
}

func applyDeliveryHops(d *delivery.Delivery, hops []delivery.Action, target delivery.Status) SyncResult {
	for i, hop := range hops {
		res := d.Apply(hop)
		if res.Success {
			continue
		}
		if i == 0 {
			return syncRejected(res.Message)
		}
		return syncPartial(fmt.Sprintf(
			"partial synchronization of delivery %s: hop %d of %d (%s) failed: %s",
			d.ID(), i+1, len(hops), hop, res.Message), i)
	}

	return syncApplied(fmt.Sprintf(
		"delivery %s synchronized to %s in %d hop(s)", d.ID(), target, len(hops)), len(hops))
}

// OrderTargetFor returns the order status mapped to a delivery status.
// Exposed for reconciliation, which needs to detect mismatched pairs
// without mutating them.
func (s StatusSynchronizer) OrderTargetFor(deliveryStatus delivery.Status) (order.Status, bool) {
	target, ok := getDeliveryToOrderFinal()[deliveryStatus]
	return target, ok
}

// DeliveryTargetFor returns the delivery status mapped to an order status.
func (s StatusSynchronizer) DeliveryTargetFor(orderStatus order.Status) (delivery.Status, bool) {
	target, ok := getOrderToDelivery()[orderStatus]
	return target, ok
}

// InSync reports whether an order/delivery status pair needs no
// synchronization in either direction.
func (s StatusSynchronizer) InSync(orderStatus order.Status, deliveryStatus delivery.Status) bool {
	target, ok := getOrderToDelivery()[orderStatus]
	return ok && target == deliveryStatus
}
