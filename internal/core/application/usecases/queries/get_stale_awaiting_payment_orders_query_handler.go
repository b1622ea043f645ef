package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleAwaitingPaymentOrdersQueryHandler finds orders whose payment
// window expired.
type GetStaleAwaitingPaymentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleAwaitingPaymentOrdersQueryHandler creates a handler for payment timeout queries.
func NewGetStaleAwaitingPaymentOrdersQueryHandler(db *gorm.DB) GetStaleAwaitingPaymentOrdersQueryHandler {
	return GetStaleAwaitingPaymentOrdersQueryHandler{db: db}
}

// Handle returns orders still in awaiting_payment that were created before
// the query's cutoff, oldest first.
func (h GetStaleAwaitingPaymentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleAwaitingPaymentOrdersQuery,
) ([]GetStaleAwaitingPaymentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stale := make([]GetStaleAwaitingPaymentOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			created_at
		FROM orders
		WHERE status = ?
		  AND created_at < ?
		ORDER BY created_at
	`, order.AwaitingPayment.String(), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		stale = append(stale, GetStaleAwaitingPaymentOrdersQueryResponse{
			OrderID:   orderID,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
