package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/viscontilabs/bitstore-backend/internal/cart"
)

// Product is one catalog listing. The ID is a human-readable slug assigned at
// seed time rather than a generated UUID, matching the public product URLs.
type Product struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"index;not null" json:"category"`
	Image       string          `json:"image"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Featured    bool            `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName pins the table name used by GORM.
func (Product) TableName() string {
	return "products"
}

// CartSnapshot converts the listing into the immutable product snapshot the
// cart carries in its lines.
func (p Product) CartSnapshot() cart.Product {
	return cart.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
		Featured:    p.Featured,
	}
}
