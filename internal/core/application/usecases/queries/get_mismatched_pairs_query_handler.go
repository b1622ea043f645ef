package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMismatchedPairsQueryHandler retrieves order/delivery pairs whose
// statuses no longer agree. The SQL pulls every pair's status columns;
// the agreement decision itself stays with the domain synchronizer, so
// the query never duplicates the mapping tables.
type GetMismatchedPairsQueryHandler struct {
	db *gorm.DB
}

// NewGetMismatchedPairsQueryHandler creates a handler for drift detection queries.
// Requires a GORM database connection for query execution.
func NewGetMismatchedPairsQueryHandler(db *gorm.DB) GetMismatchedPairsQueryHandler {
	return GetMismatchedPairsQueryHandler{db: db}
}

// Handle executes the query and returns all drifted pairs sorted by order ID.
// A status value in storage that is not part of the enum fails the whole
// query; corrupt rows are not silently skipped.
func (h GetMismatchedPairsQueryHandler) Handle(
	ctx context.Context,
	query GetMismatchedPairsQuery,
) ([]GetMismatchedPairsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pairs := make([]GetMismatchedPairsQueryResponse, 0)
	synchronizer := services.NewStatusSynchronizer()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			d.id,
			d.status
		FROM orders o
		JOIN deliveries d ON d.order_id = o.id
		ORDER BY o.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, deliveryID uuid.UUID
		var orderStatusRaw, deliveryStatusRaw string

		err = rows.Scan(
			&orderID,
			&orderStatusRaw,
			&deliveryID,
			&deliveryStatusRaw,
		)
		if err != nil {
			return nil, err
		}

		orderStatus, statusErr := order.StatusFromString(orderStatusRaw)
		if statusErr != nil {
			return nil, statusErr
		}
		deliveryStatus, statusErr := delivery.StatusFromString(deliveryStatusRaw)
		if statusErr != nil {
			return nil, statusErr
		}

		if synchronizer.InSync(orderStatus, deliveryStatus) {
			continue
		}

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		dID, idErr := kernel.UUIDFromBytes(deliveryID[:])
		if idErr != nil {
			return nil, idErr
		}

		pairs = append(pairs, GetMismatchedPairsQueryResponse{
			OrderID:        oID,
			DeliveryID:     dID,
			OrderStatus:    orderStatus,
			DeliveryStatus: deliveryStatus,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}
