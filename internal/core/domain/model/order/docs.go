// Package order implements the order side of the fulfillment workflow: the
// Order aggregate, its line items, and the data-driven state machine that
// governs the order lifecycle (pending, awaiting_payment, processing,
// shipped, delivered, cancelled).
//
// The machine is a (status, action) -> status table with a single generic
// executor, Order.Apply. Per-status rule sets are available through RulesFor
// for callers that need capability predicates without mutating anything,
// such as the status synchronizer.
package order
