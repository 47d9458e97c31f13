package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/jaysam/backend/internal/domain/shared"
)

// OrderService handles order browsing and back-office status updates.
// Checkout and cancellation live on CheckoutService because they span
// multiple aggregates in one transaction.
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetByID retrieves an order with its items. Non-staff requesters only
// see their own orders; a foreign order reports NOT_FOUND uniformly.
func (s *OrderService) GetByID(ctx context.Context, orderID, userID uuid.UUID, staff bool) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !staff && !ord.IsOwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	resp := ToOrderResponse(ord)
	return &resp, nil
}

// ListByUser retrieves a user's own orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// ListAll retrieves all orders for back-office views
func (s *OrderService) ListAll(ctx context.Context, filter ListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// UpdateStatus advances an order through the fulfillment state machine.
// Cancellation is not reachable from here; it goes through
// CheckoutService.CancelOrder so stock is restored in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target order.Status) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch target {
	case order.StatusProcessing:
		err = ord.MarkProcessing()
	case order.StatusShipped:
		err = ord.MarkShipped()
	case order.StatusDelivered:
		err = ord.MarkDelivered()
	default:
		err = shared.NewDomainError("INVALID_STATE", "Unsupported status transition "+target.String())
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, ord); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(ord)
	return &resp, nil
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	return domainFilter
}
