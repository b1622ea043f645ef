// Package kernel contains the shared building blocks of the fulfillment
// domain model: the UUID value object used as the identifier for orders,
// deliveries, and products, and the TransitionResult value object that every
// state-machine operation returns.
//
// Everything in this package is an immutable value object with constructor
// validation; the zero value of each type is invalid.
package kernel
