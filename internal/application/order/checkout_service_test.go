package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (*CheckoutService, *MockCartRepository, *MockProductRepository, *MockOrderRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	scope := NewNoOpTransactionScope(cartRepo, productRepo, orderRepo)
	return NewCheckoutService(scope), cartRepo, productRepo, orderRepo
}

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		ShippingAddress: "12 Mill Road",
		ShippingCity:    "Portland",
		ShippingState:   "OR",
		ShippingZip:     "97201",
		ShippingPhone:   "555-0101",
	}
}

func testCartLines(productA, productB uuid.UUID) []cart.Line {
	return []cart.Line{
		{
			ItemID:         uuid.New(),
			ProductID:      productA,
			ProductName:    "Oak Board 2x4x8",
			Quantity:       3,
			UnitPrice:      decimal.NewFromFloat(12.50),
			AvailableStock: decimal.NewFromInt(100),
			ProductActive:  true,
		},
		{
			ItemID:         uuid.New(),
			ProductID:      productB,
			ProductName:    "Pine Plank 1x6x10",
			Quantity:       2,
			UnitPrice:      decimal.NewFromFloat(8.00),
			AvailableStock: decimal.NewFromInt(50),
			ProductActive:  true,
		},
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	t.Run("creates order, decrements stock and clears cart", func(t *testing.T) {
		svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

		cartRepo.On("FindLinesByUser", ctx, userID).Return(testCartLines(productA, productB), nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return("ORD-20260828-0001", nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		productRepo.On("DecrementStock", ctx, productA, decimal.NewFromInt(3)).Return(nil)
		productRepo.On("DecrementStock", ctx, productB, decimal.NewFromInt(2)).Return(nil)
		cartRepo.On("DeleteByUser", ctx, userID).Return(nil)

		resp, err := svc.CreateOrderFromCart(ctx, userID, validCheckoutRequest())
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "ORD-20260828-0001", resp.OrderNumber)
		assert.Equal(t, "Pending", resp.Status)
		assert.Len(t, resp.Items, 2)
		// 3 * 12.50 + 2 * 8.00
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(53.50)))

		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("snapshots unit prices into order lines", func(t *testing.T) {
		svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

		var created *order.Order
		cartRepo.On("FindLinesByUser", ctx, userID).Return(testCartLines(productA, productB), nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return("ORD-20260828-0002", nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*order.Order)
		}).Return(nil)
		productRepo.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil)
		cartRepo.On("DeleteByUser", ctx, userID).Return(nil)

		_, err := svc.CreateOrderFromCart(ctx, userID, validCheckoutRequest())
		require.NoError(t, err)
		require.NotNil(t, created)
		require.Len(t, created.Items, 2)
		assert.True(t, created.Items[0].UnitPrice.Equal(decimal.NewFromFloat(12.50)))
		assert.True(t, created.Items[1].UnitPrice.Equal(decimal.NewFromFloat(8.00)))
	})

	t.Run("empty cart aborts before any write", func(t *testing.T) {
		svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

		cartRepo.On("FindLinesByUser", ctx, userID).Return([]cart.Line{}, nil)

		_, err := svc.CreateOrderFromCart(ctx, userID, validCheckoutRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)

		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock names the failing product", func(t *testing.T) {
		svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

		cartRepo.On("FindLinesByUser", ctx, userID).Return(testCartLines(productA, productB), nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return("ORD-20260828-0003", nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		productRepo.On("DecrementStock", ctx, productA, decimal.NewFromInt(3)).Return(nil)
		productRepo.On("DecrementStock", ctx, productB, decimal.NewFromInt(2)).Return(shared.ErrInsufficientStock)

		_, err := svc.CreateOrderFromCart(ctx, userID, validCheckoutRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Pine Plank 1x6x10")

		// The cart survives so the customer can adjust quantities
		cartRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	})

	t.Run("inactive product in cart aborts checkout", func(t *testing.T) {
		svc, cartRepo, _, orderRepo := newCheckoutFixture()

		lines := testCartLines(productA, productB)
		lines[1].ProductActive = false
		cartRepo.On("FindLinesByUser", ctx, userID).Return(lines, nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return("ORD-20260828-0004", nil)

		_, err := svc.CreateOrderFromCart(ctx, userID, validCheckoutRequest())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", shared.ErrorCode(err))
		assert.Contains(t, err.Error(), "Pine Plank 1x6x10")
	})

	t.Run("invalid shipping address fails before touching the cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newCheckoutFixture()

		req := validCheckoutRequest()
		req.ShippingCity = ""
		_, err := svc.CreateOrderFromCart(ctx, userID, req)
		require.Error(t, err)

		cartRepo.AssertNotCalled(t, "FindLinesByUser", mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newPendingOrder := func(t *testing.T, owner uuid.UUID) *order.Order {
		t.Helper()
		shipping, err := order.NewShippingAddress("12 Mill Road", "Portland", "OR", "", "")
		require.NoError(t, err)
		ord, err := order.NewOrder("ORD-20260828-0005", owner, shipping, "")
		require.NoError(t, err)
		_, err = ord.AddItem(uuid.New(), decimal.NewFromInt(3), decimal.NewFromFloat(12.50))
		require.NoError(t, err)
		_, err = ord.AddItem(uuid.New(), decimal.NewFromInt(2), decimal.NewFromFloat(8.00))
		require.NoError(t, err)
		return ord
	}

	t.Run("cancels own pending order and restores stock", func(t *testing.T) {
		svc, _, productRepo, orderRepo := newCheckoutFixture()
		ord := newPendingOrder(t, userID)

		orderRepo.On("FindByIDForUpdate", ctx, ord.ID).Return(ord, nil)
		orderRepo.On("SaveWithLock", ctx, ord).Return(nil)
		productRepo.On("RestoreStock", ctx, ord.Items[0].ProductID, decimal.NewFromInt(3)).Return(nil)
		productRepo.On("RestoreStock", ctx, ord.Items[1].ProductID, decimal.NewFromInt(2)).Return(nil)

		err := svc.CancelOrder(ctx, ord.ID, userID, false)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, ord.Status)
		assert.NotNil(t, ord.CancelledAt)

		productRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("foreign order reports not found for regular users", func(t *testing.T) {
		svc, _, productRepo, orderRepo := newCheckoutFixture()
		ord := newPendingOrder(t, uuid.New())

		orderRepo.On("FindByIDForUpdate", ctx, ord.ID).Return(ord, nil)

		err := svc.CancelOrder(ctx, ord.ID, userID, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, order.StatusPending, ord.Status)

		productRepo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("elevated caller can cancel a foreign order", func(t *testing.T) {
		svc, _, productRepo, orderRepo := newCheckoutFixture()
		ord := newPendingOrder(t, uuid.New())

		orderRepo.On("FindByIDForUpdate", ctx, ord.ID).Return(ord, nil)
		orderRepo.On("SaveWithLock", ctx, ord).Return(nil)
		productRepo.On("RestoreStock", ctx, mock.Anything, mock.Anything).Return(nil)

		err := svc.CancelOrder(ctx, ord.ID, userID, true)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, ord.Status)
	})

	t.Run("cancelled order cannot be cancelled again", func(t *testing.T) {
		svc, _, productRepo, orderRepo := newCheckoutFixture()
		ord := newPendingOrder(t, userID)
		require.NoError(t, ord.Cancel())

		orderRepo.On("FindByIDForUpdate", ctx, ord.ID).Return(ord, nil)

		err := svc.CancelOrder(ctx, ord.ID, userID, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		productRepo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("processing order cannot be cancelled", func(t *testing.T) {
		svc, _, _, orderRepo := newCheckoutFixture()
		ord := newPendingOrder(t, userID)
		require.NoError(t, ord.MarkProcessing())

		orderRepo.On("FindByIDForUpdate", ctx, ord.ID).Return(ord, nil)

		err := svc.CancelOrder(ctx, ord.ID, userID, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("missing order propagates not found", func(t *testing.T) {
		svc, _, _, orderRepo := newCheckoutFixture()
		orderID := uuid.New()

		orderRepo.On("FindByIDForUpdate", ctx, orderID).Return(nil, shared.ErrNotFound)

		err := svc.CancelOrder(ctx, orderID, userID, false)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
