package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CheckoutRequest carries the shipping details captured at checkout
type CheckoutRequest struct {
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingPhone   string
	CustomerNotes   string
}

// OrderItemResponse represents an order line in responses
type OrderItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	UserID        uuid.UUID           `json:"user_id"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Items         []OrderItemResponse `json:"items"`
	Shipping      ShippingResponse    `json:"shipping"`
	CustomerNotes string              `json:"customer_notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
}

// ShippingResponse represents shipping details in responses
type ShippingResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// OrderListItemResponse is the compact order representation for lists
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	City        string          `json:"shipping_city"`
	State       string          `json:"shipping_state"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListFilter carries list/pagination options for order queries
type ListFilter struct {
	Page     int
	PageSize int
	Status   *order.Status
}

// ToOrderResponse converts a domain order to its response representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		Items:       items,
		Shipping: ShippingResponse{
			Address: o.Shipping.Address,
			City:    o.Shipping.City,
			State:   o.Shipping.State,
			Zip:     o.Shipping.Zip,
			Phone:   o.Shipping.Phone,
		},
		CustomerNotes: o.CustomerNotes,
		CreatedAt:     o.CreatedAt,
		CancelledAt:   o.CancelledAt,
	}
}

// ToOrderListItemResponses converts domain orders to list responses
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	out := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		out[i] = OrderListItemResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			Status:      o.Status.String(),
			TotalAmount: o.TotalAmount,
			City:        o.Shipping.City,
			State:       o.Shipping.State,
			ItemCount:   len(o.Items),
			CreatedAt:   o.CreatedAt,
		}
	}
	return out
}
