package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetMismatchedPairsQueryIsNotConstructed = errors.New(
	"GetMismatchedPairsQuery must be created via NewGetMismatchedPairsQuery constructor",
)

// GetMismatchedPairsQuery retrieves order/delivery pairs whose statuses have
// drifted apart. The reconciliation job feeds its results back into the
// synchronization commands.
type GetMismatchedPairsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMismatchedPairsQuery creates a query to retrieve drifted pairs.
// This is a parameterless query over the whole pair population.
func NewGetMismatchedPairsQuery() GetMismatchedPairsQuery {
	return GetMismatchedPairsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetMismatchedPairsQuery) Validate() error {
	return q.guard.Validate(ErrGetMismatchedPairsQueryIsNotConstructed)
}

// GetMismatchedPairsQueryResponse identifies one drifted pair with both
// current statuses, so the caller can decide which side to drive.
type GetMismatchedPairsQueryResponse struct {
	OrderID        kernel.UUID
	DeliveryID     kernel.UUID
	OrderStatus    order.Status
	DeliveryStatus delivery.Status
}
