package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for the User aggregate
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, user *User) error
}
