package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartService handles shopping cart mutations. Each operation is a
// single-row write; only checkout (in the order application package)
// needs multi-table atomicity.
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart joined with live product pricing
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	lines, err := s.cartRepo.FindLinesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(lines)
	return &resp, nil
}

// Add puts quantity units of a product into the user's cart, merging
// into an existing line on repeat adds. The requested quantity plus
// whatever is already in the cart must not exceed available stock.
func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	inCart := 0
	if existing != nil {
		inCart = existing.Quantity
	}

	requested := decimal.NewFromInt(int64(quantity + inCart))
	if !product.HasStockFor(requested) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %s %s of %q available", product.QuantityInStock, product.Unit, product.Name))
	}

	if existing != nil {
		if err := existing.IncreaseQuantity(quantity); err != nil {
			return err
		}
		return s.cartRepo.Save(ctx, existing)
	}

	item, err := cart.NewCartItem(userID, productID, quantity)
	if err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, item)
}

// Update overwrites a line's quantity, re-validating against stock.
// A quantity of zero or less removes the line.
func (s *CartService) Update(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.Delete(ctx, userID, itemID)
	}

	item, err := s.cartRepo.FindByID(ctx, userID, itemID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.FindActiveByID(ctx, item.ProductID)
	if err != nil {
		return err
	}

	if !product.HasStockFor(decimal.NewFromInt(int64(quantity))) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %s %s of %q available", product.QuantityInStock, product.Unit, product.Name))
	}

	if err := item.SetQuantity(quantity); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, item)
}

// Remove deletes a single line from the user's cart
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, userID, itemID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}
