package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──(ship)──> Shipping ──(deliver)──> Delivered
//	   │                    │
//	   └─────(cancel)───────┴──> Cancelled
//
// Delivered and Cancelled are absorbing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a delivery, created once its order
	// reaches a shippable state.
	Pending

	// Shipping indicates the parcel is on its way.
	Shipping

	// Delivered indicates the parcel reached the customer. Final state.
	Delivered

	// Cancelled indicates the delivery was called off. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown" for
// invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is absorbing.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// StatusFromString parses a persisted or externally supplied status string.
// Unrecognized strings are a hard error, never coerced to a default.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Action identifies an operation on the delivery state machine.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionShip starts the delivery: pending -> shipping.
	ActionShip

	// ActionDeliver records receipt: shipping -> delivered.
	ActionDeliver

	// ActionCancel cancels the delivery from any non-terminal state.
	ActionCancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionShip:    "ship",
		ActionDeliver: "deliver",
		ActionCancel:  "cancel",
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
			fmt.Errorf("%d is not a valid delivery action", a))
	}
	return nil
}

// ActionFromString parses an externally supplied action name.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action is invalid",
		fmt.Errorf("%q is not a valid delivery action", s))
}

// getTransitions returns the (status, action) -> status table driving the
// delivery state machine.
func getTransitions() map[Status]map[Action]Status {
	return map[Status]map[Action]Status{
		Pending: {
			ActionShip:   Shipping,
			ActionCancel: Cancelled,
		},
		Shipping: {
			ActionDeliver: Delivered,
			ActionCancel:  Cancelled,
		},
		Delivered: {},
		Cancelled: {},
	}
}

// Ruleset is the transition-rule set bound to a single delivery status.
type Ruleset struct {
	status Status
	next   map[Action]Status
}

// RulesFor returns the rule set bound to the given status.
// An invalid status is a hard error; there is no fallback rule set.
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

// Capability predicates queried by callers and the status synchronizer.

func (r Ruleset) CanShip() bool    { return r.Can(ActionShip) }
func (r Ruleset) CanDeliver() bool { return r.Can(ActionDeliver) }
func (r Ruleset) CanCancel() bool  { return r.Can(ActionCancel) }
