package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	                 ┌──(await)──> AwaitingPayment ──(pending)──┐
//	                 │                      │                   │
//	Pending <────────┴──────────────────────┼───<───────────────┘
//	   │                                    │(cancel)
//	(process)                               v
//	   └──> Processing ──(ship)──> Shipped ──(deliver)──> Delivered
//	              │                   │
//	              └───────(cancel)────┴──> Cancelled
//
// Delivered and Cancelled are absorbing: no action leaves them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a paid-up-front order,
	// waiting to enter processing.
	Pending

	// AwaitingPayment indicates the order is created but payment
	// confirmation has not arrived yet.
	AwaitingPayment

	// Processing indicates the order is being picked and packed.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled and its reserved
	// stock returned. This is a final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. The strings are the persisted enum values.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		AwaitingPayment: "awaiting_payment",
		Processing:      "processing",
		Shipped:         "shipped",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is intentionally excluded to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "pending",
		AwaitingPayment: "awaiting_payment",
		Processing:      "processing",
		Shipped:         "shipped",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is absorbing: once an order is
// delivered or cancelled no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// StatusFromString parses a persisted or externally supplied status string.
//
// An unrecognized string is a hard error, never coerced to a default:
// a status outside the enum means corrupt data or a bad request, and
// silently treating it as pending would mask that.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", s))
}

// Action identifies an operation on the order state machine.
// Every action is callable from any state; the transition table decides
// whether it is accepted.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionPending confirms payment: awaiting_payment -> pending.
	ActionPending

	// ActionProcess starts fulfillment: pending -> processing.
	ActionProcess

	// ActionShip dispatches the order: processing -> shipped.
	ActionShip

	// ActionDeliver records customer receipt: shipped -> delivered.
	ActionDeliver

	// ActionCancel cancels the order from any non-terminal state and
	// triggers stock restoration.
	ActionCancel

	// ActionAwait parks the order until payment confirms: pending -> awaiting_payment.
	ActionAwait
)

// getActionStrings returns a map of Action values to their string
// representations, as accepted by the HTTP layer.
func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionPending: "pending",
		ActionProcess: "process",
		ActionShip:    "ship",
		ActionDeliver: "deliver",
		ActionCancel:  "cancel",
		ActionAwait:   "await",
	}
}

// String returns the action name, or "unknown" for invalid values.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%d is not a valid order action", a))
	}
	return nil
}

// ActionFromString parses an externally supplied action name.
// Unrecognized names are a hard error.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action is invalid",
		fmt.Errorf("%q is not a valid order action", s))
}

// getTransitions returns the (status, action) -> status table driving the
// order state machine. Any pair absent from the table is rejected; the
// terminal statuses have empty rows.
func getTransitions() map[Status]map[Action]Status {
	return map[Status]map[Action]Status{
		AwaitingPayment: {
			ActionPending: Pending,
			ActionCancel:  Cancelled,
		},
		Pending: {
			ActionProcess: Processing,
			ActionCancel:  Cancelled,
			ActionAwait:   AwaitingPayment,
		},
		Processing: {
			ActionShip:   Shipped,
			ActionCancel: Cancelled,
		},
		Shipped: {
			ActionDeliver: Delivered,
			ActionCancel:  Cancelled,
		},
		Delivered: {},
		Cancelled: {},
	}
}

// Ruleset is the transition-rule set bound to a single status: one row of
// the transition table. It is what the synchronizer queries when it needs
// "can transition" predicates without mutating anything.
type Ruleset struct {
	status Status
	next   map[Action]Status
}

// RulesFor returns the rule set bound to the given status.
// An invalid status (including Unknown) is a hard error; there is no
// fallback rule set.
func RulesFor(s Status) (Ruleset, error) {
	if err := s.Validate(); err != nil {
		return Ruleset{}, err
	}
	return Ruleset{status: s, next: getTransitions()[s]}, nil
}

// Status returns the status this rule set is bound to.
func (r Ruleset) Status() Status {
	return r.status
}

// Can reports whether the action is permitted from the bound status.
func (r Ruleset) Can(a Action) bool {
	_, ok := r.next[a]
	return ok
}

// Next returns the status the action leads to from the bound status.
// The second return value is false when the action is not permitted.
func (r Ruleset) Next(a Action) (Status, bool) {
	s, ok := r.next[a]
	return s, ok
}

// ActionTo returns the action that moves the bound status directly to the
// target status, if any.
func (r Ruleset) ActionTo(target Status) (Action, bool) {
	for action, next := range r.next {
		if next == target {
			return action, true
		}
	}
	return ActionUnknown, false
}

// Capability predicates, one per action, queried by callers and the
// status synchronizer before attempting a transition.

func (r Ruleset) CanPending() bool { return r.Can(ActionPending) }
func (r Ruleset) CanProcess() bool { return r.Can(ActionProcess) }
func (r Ruleset) CanShip() bool    { return r.Can(ActionShip) }
func (r Ruleset) CanDeliver() bool { return r.Can(ActionDeliver) }
func (r Ruleset) CanCancel() bool  { return r.Can(ActionCancel) }
func (r Ruleset) CanAwait() bool   { return r.Can(ActionAwait) }
