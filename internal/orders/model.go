package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Buyer holds the contact details captured on the checkout form. The JSON
// keys stay in Spanish to match the storefront form payloads.
type Buyer struct {
	Name       string `gorm:"column:buyer_name;not null" json:"nombre"`
	Email      string `gorm:"column:buyer_email;not null" json:"email"`
	Phone      string `gorm:"column:buyer_phone;not null" json:"telefono"`
	Address    string `gorm:"column:buyer_address;not null" json:"direccion"`
	City       string `gorm:"column:buyer_city;not null" json:"ciudad"`
	PostalCode string `gorm:"column:buyer_postal_code;not null" json:"codigoPostal"`
}

// Order is one confirmed storefront purchase.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	Status      string          `gorm:"not null" json:"status"`
	Buyer       Buyer           `gorm:"embedded" json:"buyer"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	TotalItems  int             `gorm:"not null" json:"totalItems"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TableName pins the table name used by GORM.
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the row id when the caller did not.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one purchased line frozen at checkout time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ProductID string          `gorm:"not null" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	CreatedAt time.Time       `json:"-"`
}

// TableName pins the table name used by GORM.
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate assigns the row id when the caller did not.
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
