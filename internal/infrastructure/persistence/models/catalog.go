package models

import (
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products
type ProductModel struct {
	AggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	TimberType      string          `gorm:"type:varchar(100);not null;index"`
	Category        string          `gorm:"type:varchar(50);not null;index"`
	Grade           string          `gorm:"type:varchar(50);not null"`
	DimensionLabel  string          `gorm:"type:varchar(50);not null"`
	Thickness       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Width           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Length          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit            string          `gorm:"type:varchar(30);not null;default:'piece'"`
	PricePerUnit    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	QuantityInStock decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Description     string          `gorm:"type:text"`
	ImageURL        string          `gorm:"type:varchar(500)"`
	IsFeatured      bool            `gorm:"not null;default:false;index"`
	IsActive        bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TimberType:        m.TimberType,
		Category:          catalog.Category(m.Category),
		Grade:             m.Grade,
		Dimensions: catalog.Dimensions{
			Label:     m.DimensionLabel,
			Thickness: m.Thickness,
			Width:     m.Width,
			Length:    m.Length,
		},
		Unit:            m.Unit,
		PricePerUnit:    m.PricePerUnit,
		QuantityInStock: m.QuantityInStock,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		IsFeatured:      m.IsFeatured,
		IsActive:        m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.TimberType = p.TimberType
	m.Category = p.Category.String()
	m.Grade = p.Grade
	m.DimensionLabel = p.Dimensions.Label
	m.Thickness = p.Dimensions.Thickness
	m.Width = p.Dimensions.Width
	m.Length = p.Dimensions.Length
	m.Unit = p.Unit
	m.PricePerUnit = p.PricePerUnit
	m.QuantityInStock = p.QuantityInStock
	m.Description = p.Description
	m.ImageURL = p.ImageURL
	m.IsFeatured = p.IsFeatured
	m.IsActive = p.IsActive
}
