package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for customer orders
type OrderModel struct {
	AggregateModel
	OrderNumber     string           `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Status          string           `gorm:"type:varchar(20);not null;index"`
	ShippingAddress string           `gorm:"type:varchar(500);not null"`
	ShippingCity    string           `gorm:"type:varchar(100);not null"`
	ShippingState   string           `gorm:"type:varchar(100);not null"`
	ShippingZip     string           `gorm:"type:varchar(20)"`
	ShippingPhone   string           `gorm:"type:varchar(30)"`
	CustomerNotes   string           `gorm:"type:text"`
	CancelledAt     *time.Time       `gorm:"index"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for order lines.
// Prices are snapshotted at checkout and never updated.
type OrderItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for OrderItemModel
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.Item{
			ID:         it.ID,
			OrderID:    it.OrderID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			CreatedAt:  it.CreatedAt,
		}
	}

	return &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		UserID:            m.UserID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		Status:            order.Status(m.Status),
		Shipping: order.ShippingAddress{
			Address: m.ShippingAddress,
			City:    m.ShippingCity,
			State:   m.ShippingState,
			Zip:     m.ShippingZip,
			Phone:   m.ShippingPhone,
		},
		CustomerNotes: m.CustomerNotes,
		CancelledAt:   m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status.String()
	m.ShippingAddress = o.Shipping.Address
	m.ShippingCity = o.Shipping.City
	m.ShippingState = o.Shipping.State
	m.ShippingZip = o.Shipping.Zip
	m.ShippingPhone = o.Shipping.Phone
	m.CustomerNotes = o.CustomerNotes
	m.CancelledAt = o.CancelledAt

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:         it.ID,
			OrderID:    it.OrderID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			CreatedAt:  it.CreatedAt,
		}
	}
}
