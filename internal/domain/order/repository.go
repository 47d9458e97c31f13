package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/shared"
)

// Repository defines persistence operations for the Order aggregate
type Repository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate loads an order with its items, taking a row lock
	// so concurrent cancellations serialize on the order row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Create inserts a new order with all of its items
	Create(ctx context.Context, order *Order) error
	// SaveWithLock updates an existing order guarded by its version
	SaveWithLock(ctx context.Context, order *Order) error
	// GenerateOrderNumber produces the next sequential order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
