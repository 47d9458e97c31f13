package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category represents the merchandise category of a product
type Category string

const (
	CategoryTimber            Category = "Timber"
	CategoryPlywood           Category = "Plywood"
	CategoryHardware          Category = "Hardware"
	CategoryPaints            Category = "Paints"
	CategoryBuildingMaterials Category = "Building Materials"
)

// IsValid checks if the category is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryTimber, CategoryPlywood, CategoryHardware, CategoryPaints, CategoryBuildingMaterials:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Dimensions describes the physical size of a timber product.
// Label is the human-readable form shown in the catalog (e.g. "2x4x8").
type Dimensions struct {
	Label     string
	Thickness decimal.Decimal
	Width     decimal.Decimal
	Length    decimal.Decimal
}

// NewDimensions creates a validated Dimensions value
func NewDimensions(label string, thickness, width, length decimal.Decimal) (Dimensions, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Dimensions{}, shared.NewDomainError("INVALID_DIMENSIONS", "Dimension label cannot be empty")
	}
	if thickness.LessThanOrEqual(decimal.Zero) || width.LessThanOrEqual(decimal.Zero) || length.LessThanOrEqual(decimal.Zero) {
		return Dimensions{}, shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions must be positive")
	}
	return Dimensions{Label: label, Thickness: thickness, Width: width, Length: length}, nil
}

// Product represents a stocked item in the merchant's catalog.
// It is the aggregate root for catalog and stock-level operations.
type Product struct {
	shared.BaseAggregateRoot
	Name            string
	TimberType      string
	Category        Category
	Grade           string
	Dimensions      Dimensions
	Unit            string
	PricePerUnit    decimal.Decimal
	QuantityInStock decimal.Decimal
	Description     string
	ImageURL        string
	IsFeatured      bool
	IsActive        bool
}

// NewProduct creates a new active product
func NewProduct(name, timberType string, category Category, grade string, dims Dimensions, unit string, pricePerUnit, quantityInStock decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if strings.TrimSpace(timberType) == "" {
		return nil, shared.NewDomainError("INVALID_TIMBER_TYPE", "Timber type cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown product category %q", category))
	}
	if strings.TrimSpace(grade) == "" {
		return nil, shared.NewDomainError("INVALID_GRADE", "Product grade cannot be empty")
	}
	if unit == "" {
		unit = "piece"
	}
	if pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}
	if quantityInStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TimberType:        strings.TrimSpace(timberType),
		Category:          category,
		Grade:             strings.TrimSpace(grade),
		Dimensions:        dims,
		Unit:              unit,
		PricePerUnit:      pricePerUnit,
		QuantityInStock:   quantityInStock,
		IsActive:          true,
	}, nil
}

// UpdateDetails updates the descriptive attributes of the product
func (p *Product) UpdateDetails(name, grade, description, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(grade) == "" {
		return shared.NewDomainError("INVALID_GRADE", "Product grade cannot be empty")
	}

	p.Name = name
	p.Grade = strings.TrimSpace(grade)
	p.Description = description
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice updates the unit price
func (p *Product) SetPrice(pricePerUnit decimal.Decimal) error {
	if pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}

	p.PricePerUnit = pricePerUnit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AdjustStock sets the absolute stock level (back-office correction)
func (p *Product) AdjustStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.QuantityInStock = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStockFor reports whether the requested quantity can currently be fulfilled
func (p *Product) HasStockFor(quantity decimal.Decimal) bool {
	return p.IsActive && quantity.GreaterThan(decimal.Zero) && p.QuantityInStock.GreaterThanOrEqual(quantity)
}

// SetFeatured toggles the storefront featured flag
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the product from the storefront.
// Existing order items keep referencing it for restock on cancel.
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate restores a deactivated product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
