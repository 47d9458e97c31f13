package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a cart read model joining the cart line with the live product.
// UnitPrice and AvailableStock reflect the catalog at read time; checkout
// snapshots them inside its transaction.
type Line struct {
	ItemID         uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	TimberType     string
	Grade          string
	Dimensions     string
	Unit           string
	Quantity       int
	UnitPrice      decimal.Decimal
	AvailableStock decimal.Decimal
	ProductActive  bool
}

// LineTotal returns quantity × live unit price
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Repository defines persistence operations for cart lines
type Repository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	// FindByID returns the cart line only if it belongs to the given user
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)
	// FindLinesByUser returns the user's cart joined with live product data
	FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]Line, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	// DeleteByUser clears the whole cart for a user
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
