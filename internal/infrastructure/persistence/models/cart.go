package models

import (
	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
)

// CartItemModel is the persistence model for shopping cart lines.
// One row per user and product, enforced by a unique index.
type CartItemModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for CartItemModel
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() *cart.CartItem {
	return &cart.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain CartItem
func (m *CartItemModel) FromDomain(item *cart.CartItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.UserID = item.UserID
	m.ProductID = item.ProductID
	m.Quantity = item.Quantity
}
