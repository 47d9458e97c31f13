package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/shared"
)

// CartItem represents one product line in a user's shopping cart.
// A user holds at most one CartItem per product; repeat adds merge
// into the existing line.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// NewCartItem creates a new cart line for a user and product
func NewCartItem(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// IncreaseQuantity merges a repeat add into the existing line
func (i *CartItem) IncreaseQuantity(delta int) error {
	if delta <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity += delta
	i.UpdatedAt = time.Now()

	return nil
}

// SetQuantity overwrites the line quantity. Callers remove the line
// instead when the new quantity drops to zero or below.
func (i *CartItem) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.UpdatedAt = time.Now()

	return nil
}
