// Package services contains domain services: operations of the fulfillment
// domain that span more than one aggregate and therefore belong to neither.
//
// StatusSynchronizer translates a status change in an order or delivery into
// the corresponding change(s) in its counterpart, including interim hops and
// idempotent no-ops.
package services
