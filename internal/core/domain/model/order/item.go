package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is a line item of an order: a product reference, the reserved
// quantity, and the unit price captured at checkout. Item is an immutable
// value object; the reserved quantity is what gets credited back to stock
// when the order is cancelled.
type Item struct {
	productID  kernel.UUID
	quantity   int
	priceCents int64
}

// NewItem creates a validated line item. Quantity must be positive and the
// price non-negative; prices are kept in integer cents.
func NewItem(productID kernel.UUID, quantity int, priceCents int64) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if priceCents < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is negative", priceCents))
	}

	return Item{
		productID:  productID,
		quantity:   quantity,
		priceCents: priceCents,
	}, nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the reserved quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// PriceCents returns the unit price in integer cents.
func (i Item) PriceCents() int64 {
	return i.priceCents
}
