// Package productrepo provides the product/stock persistence adapter.
// The fulfillment core only ever adjusts stock levels; the catalog fields
// exist so the table is usable by the services that own product data.
package productrepo

import (
	"github.com/google/uuid"
)

// ProductDTO represents the database structure for product stock rows.
type ProductDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255)"`
	PriceCents int64
	Stock      int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}
