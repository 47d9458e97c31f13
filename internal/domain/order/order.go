package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// ShippingAddress holds the delivery details captured at checkout
type ShippingAddress struct {
	Address string
	City    string
	State   string
	Zip     string
	Phone   string
}

// NewShippingAddress creates a validated shipping address
func NewShippingAddress(address, city, state, zip, phone string) (ShippingAddress, error) {
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	if address == "" {
		return ShippingAddress{}, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if city == "" {
		return ShippingAddress{}, shared.NewDomainError("INVALID_ADDRESS", "Shipping city cannot be empty")
	}
	if state == "" {
		return ShippingAddress{}, shared.NewDomainError("INVALID_ADDRESS", "Shipping state cannot be empty")
	}

	return ShippingAddress{
		Address: address,
		City:    city,
		State:   state,
		Zip:     strings.TrimSpace(zip),
		Phone:   strings.TrimSpace(phone),
	}, nil
}

// Item is an order line with the unit price snapshotted at checkout.
// Items are immutable once the order is created.
type Item struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// NewItem creates a new order line snapshotting the given unit price
func NewItem(orderID, productID uuid.UUID, quantity, unitPrice decimal.Decimal) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: quantity.Mul(unitPrice),
		CreatedAt:  time.Now(),
	}, nil
}

// Order represents a customer order aggregate root. Orders are created
// once at checkout and never deleted; status changes only through the
// transitions defined on Status.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string
	UserID        uuid.UUID
	Items         []Item
	TotalAmount   decimal.Decimal
	Status        Status
	Shipping      ShippingAddress
	CustomerNotes string
	CancelledAt   *time.Time
}

// NewOrder creates a new pending order for a user
func NewOrder(orderNumber string, userID uuid.UUID, shipping ShippingAddress, notes string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             make([]Item, 0),
		TotalAmount:       decimal.Zero,
		Status:            StatusPending,
		Shipping:          shipping,
		CustomerNotes:     notes,
	}, nil
}

// AddItem appends a line to a not-yet-persisted order and updates the total.
// Only meaningful while the order is still Pending and being assembled.
func (o *Order) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal) (*Item, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewItem(o.ID, productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.TotalAmount = o.TotalAmount.Add(item.TotalPrice)
	o.UpdatedAt = time.Now()

	return item, nil
}

// IsOwnedBy reports whether the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// Cancel transitions a pending order to cancelled. The caller restores
// stock for every line in the same transaction.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkProcessing moves a pending order into fulfillment
func (o *Order) MarkProcessing() error {
	return o.transition(StatusProcessing)
}

// MarkShipped marks a processing order as shipped
func (o *Order) MarkShipped() error {
	return o.transition(StatusShipped)
}

// MarkDelivered marks a shipped order as delivered
func (o *Order) MarkDelivered() error {
	return o.transition(StatusDelivered)
}

func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsPending returns true if the order has not entered fulfillment
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}
