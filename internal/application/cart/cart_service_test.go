package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindTimberTypes(ctx context.Context) ([]catalog.TimberTypeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.TimberTypeSummary), args.Error(1)
}

func (m *MockProductRepository) FindActiveByTimberType(ctx context.Context, timberType string) ([]catalog.Product, error) {
	args := m.Called(ctx, timberType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func newStockedProduct(t *testing.T, stock int64) *catalog.Product {
	t.Helper()
	dims, err := catalog.NewDimensions("2x4x8", decimal.NewFromInt(2), decimal.NewFromInt(4), decimal.NewFromInt(8))
	require.NoError(t, err)
	product, err := catalog.NewProduct("Oak Board 2x4x8", "Oak", catalog.CategoryTimber, "A", dims, "piece",
		decimal.NewFromFloat(12.50), decimal.NewFromInt(stock))
	require.NoError(t, err)
	return product
}

func TestCartServiceAdd(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds a new line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		product := newStockedProduct(t, 10)

		productRepo.On("FindActiveByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, userID, product.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.MatchedBy(func(item *cart.CartItem) bool {
			return item.UserID == userID && item.ProductID == product.ID && item.Quantity == 3
		})).Return(nil)

		err := svc.Add(ctx, userID, product.ID, 3)
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("repeat add merges into the existing line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		product := newStockedProduct(t, 10)

		existing, err := cart.NewCartItem(userID, product.ID, 2)
		require.NoError(t, err)

		productRepo.On("FindActiveByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, userID, product.ID).Return(existing, nil)
		cartRepo.On("Save", ctx, existing).Return(nil)

		require.NoError(t, svc.Add(ctx, userID, product.ID, 3))
		assert.Equal(t, 5, existing.Quantity)
	})

	t.Run("rejects adds beyond available stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		product := newStockedProduct(t, 4)

		existing, err := cart.NewCartItem(userID, product.ID, 2)
		require.NoError(t, err)

		productRepo.On("FindActiveByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, userID, product.ID).Return(existing, nil)

		// 2 in cart + 3 requested > 4 in stock
		err = svc.Add(ctx, userID, product.ID, 3)
		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.ErrorCode(err))
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		productID := uuid.New()

		productRepo.On("FindActiveByID", ctx, productID).Return(nil, shared.ErrNotFound)

		err := svc.Add(ctx, userID, productID, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects non-positive quantity without touching repos", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)

		err := svc.Add(ctx, userID, uuid.New(), 0)
		require.Error(t, err)
		productRepo.AssertNotCalled(t, "FindActiveByID", mock.Anything, mock.Anything)
	})
}

func TestCartServiceUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("overwrites quantity after stock check", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		product := newStockedProduct(t, 10)

		item, err := cart.NewCartItem(userID, product.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, userID, item.ID).Return(item, nil)
		productRepo.On("FindActiveByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("Save", ctx, item).Return(nil)

		require.NoError(t, svc.Update(ctx, userID, item.ID, 7))
		assert.Equal(t, 7, item.Quantity)
	})

	t.Run("rejects quantity beyond stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		product := newStockedProduct(t, 5)

		item, err := cart.NewCartItem(userID, product.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, userID, item.ID).Return(item, nil)
		productRepo.On("FindActiveByID", ctx, product.ID).Return(product, nil)

		err = svc.Update(ctx, userID, item.ID, 6)
		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.ErrorCode(err))
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		itemID := uuid.New()

		cartRepo.On("Delete", ctx, userID, itemID).Return(nil)

		require.NoError(t, svc.Update(ctx, userID, itemID, 0))
		cartRepo.AssertExpectations(t)
	})

	t.Run("foreign line reports not found", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewCartService(cartRepo, productRepo)
		itemID := uuid.New()

		cartRepo.On("FindByID", ctx, userID, itemID).Return(nil, shared.ErrNotFound)

		err := svc.Update(ctx, userID, itemID, 2)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartServiceGet(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	lines := []cart.Line{
		{ItemID: uuid.New(), ProductID: uuid.New(), ProductName: "Oak Board", Quantity: 3, UnitPrice: decimal.NewFromFloat(12.50)},
		{ItemID: uuid.New(), ProductID: uuid.New(), ProductName: "Pine Plank", Quantity: 2, UnitPrice: decimal.NewFromFloat(8.00)},
	}
	cartRepo.On("FindLinesByUser", ctx, userID).Return(lines, nil)

	resp, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.ItemCount)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(53.50)))
	assert.Len(t, resp.Items, 2)
}

func TestCartServiceClear(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cartRepo := new(MockCartRepository)
	svc := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("DeleteByUser", ctx, userID).Return(nil)
	require.NoError(t, svc.Clear(ctx, userID))
	cartRepo.AssertExpectations(t)
}
