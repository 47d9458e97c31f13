package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CheckoutService converts carts into orders and handles cancellation.
// Every multi-row mutation runs inside a single TransactionScope so a
// failure at any step leaves no partial order, stock change, or cart change.
type CheckoutService struct {
	scope TransactionScope
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope) *CheckoutService {
	return &CheckoutService{scope: scope}
}

// CreateOrderFromCart atomically converts the user's cart into a new
// pending order: snapshots unit prices into order lines, decrements
// product stock guarded by availability, and clears the cart. Any
// failure rolls the whole transaction back.
func (s *CheckoutService) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	shipping, err := order.NewShippingAddress(req.ShippingAddress, req.ShippingCity, req.ShippingState, req.ShippingZip, req.ShippingPhone)
	if err != nil {
		return nil, err
	}

	var resp OrderResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, err := repos.CartRepo().FindLinesByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return shared.ErrEmptyCart
		}

		orderNumber, err := repos.OrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		ord, err := order.NewOrder(orderNumber, userID, shipping, req.CustomerNotes)
		if err != nil {
			return err
		}

		// Snapshot prices line by line; later catalog price changes do
		// not retroactively affect the order.
		for _, line := range lines {
			if !line.ProductActive {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %q is no longer available", line.ProductName))
			}
			qty := decimal.NewFromInt(int64(line.Quantity))
			if _, err := ord.AddItem(line.ProductID, qty, line.UnitPrice); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Create(ctx, ord); err != nil {
			return err
		}

		// Conditional decrement: the guard rejects any line the current
		// stock cannot cover, which aborts and rolls back everything.
		for _, line := range lines {
			qty := decimal.NewFromInt(int64(line.Quantity))
			if err := repos.ProductRepo().DecrementStock(ctx, line.ProductID, qty); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for %q", line.ProductName))
				}
				return err
			}
		}

		if err := repos.CartRepo().DeleteByUser(ctx, userID); err != nil {
			return err
		}

		resp = ToOrderResponse(ord)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// CancelOrder transitions a pending order to cancelled and restores the
// stock every line removed at checkout. Non-elevated requesters may only
// cancel their own orders; a foreign order reports NOT_FOUND rather than
// FORBIDDEN so existence is not leaked.
func (s *CheckoutService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID, elevated bool) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if !elevated && !ord.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}

		if err := ord.Cancel(); err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, ord); err != nil {
			return err
		}

		// Restore is additive; no stock guard applies
		for _, item := range ord.Items {
			if err := repos.ProductRepo().RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}
