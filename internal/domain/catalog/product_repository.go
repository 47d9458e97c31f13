package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TimberTypeSummary groups catalog products by timber type for storefront browsing
type TimberTypeSummary struct {
	TimberType   string
	Category     Category
	ImageURL     string
	VariantCount int64
}

// ProductRepository defines persistence operations for the Product aggregate
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindActiveByID returns the product only if it is active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindFeatured(ctx context.Context, limit int) ([]Product, error)
	FindTimberTypes(ctx context.Context) ([]TimberTypeSummary, error)
	FindActiveByTimberType(ctx context.Context, timberType string) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	// SaveWithLock saves with optimistic locking on the aggregate version
	SaveWithLock(ctx context.Context, product *Product) error

	// DecrementStock atomically subtracts quantity from the product's stock,
	// guarded by quantity_in_stock >= quantity. Returns
	// shared.ErrInsufficientStock when the guard rejects the update.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
	// RestoreStock atomically adds quantity back to the product's stock
	RestoreStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
}
