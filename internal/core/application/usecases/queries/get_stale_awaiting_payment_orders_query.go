package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStaleAwaitingPaymentOrdersQueryIsNotConstructed = errors.New(
	"GetStaleAwaitingPaymentOrdersQuery must be created via NewGetStaleAwaitingPaymentOrdersQuery constructor",
)

// GetStaleAwaitingPaymentOrdersQuery retrieves orders stuck in
// awaiting_payment since before the cutoff. The payment timeout job cancels
// what this query returns.
type GetStaleAwaitingPaymentOrdersQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleAwaitingPaymentOrdersQuery creates a query for orders whose
// payment window expired at the given cutoff instant.
func NewGetStaleAwaitingPaymentOrdersQuery(cutoff time.Time) (GetStaleAwaitingPaymentOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStaleAwaitingPaymentOrdersQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetStaleAwaitingPaymentOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Cutoff returns the instant before which awaiting_payment orders are stale.
func (q GetStaleAwaitingPaymentOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// Validate ensures the query was created through the constructor.
func (q GetStaleAwaitingPaymentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleAwaitingPaymentOrdersQueryIsNotConstructed)
}

// GetStaleAwaitingPaymentOrdersQueryResponse identifies one stale order.
type GetStaleAwaitingPaymentOrdersQueryResponse struct {
	OrderID   kernel.UUID
	CreatedAt time.Time
}
