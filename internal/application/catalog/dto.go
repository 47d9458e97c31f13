package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest carries the attributes for a new catalog product
type CreateProductRequest struct {
	Name            string
	TimberType      string
	Category        catalog.Category
	Grade           string
	DimensionLabel  string
	Thickness       decimal.Decimal
	Width           decimal.Decimal
	Length          decimal.Decimal
	Unit            string
	PricePerUnit    decimal.Decimal
	QuantityInStock decimal.Decimal
	Description     string
	ImageURL        string
}

// UpdateProductRequest carries updatable descriptive attributes
type UpdateProductRequest struct {
	Name        string
	Grade       string
	Description string
	ImageURL    string
}

// ListFilter carries catalog browsing filters. All filters combine with
// AND; zero values are ignored.
type ListFilter struct {
	Page            int
	PageSize        int
	Search          string
	TimberType      string
	Category        *catalog.Category
	Grade           string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	MinLength       *decimal.Decimal
	MaxLength       *decimal.Decimal
	FeaturedOnly    bool
	IncludeInactive bool
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	TimberType      string           `json:"timber_type"`
	Category        string           `json:"category"`
	Grade           string           `json:"grade"`
	Dimensions      string           `json:"dimensions"`
	Thickness       decimal.Decimal  `json:"thickness"`
	Width           decimal.Decimal  `json:"width"`
	Length          decimal.Decimal  `json:"length"`
	Unit            string           `json:"unit"`
	PricePerUnit    decimal.Decimal  `json:"price_per_unit"`
	QuantityInStock decimal.Decimal  `json:"quantity_in_stock"`
	Description     string           `json:"description,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	IsFeatured      bool             `json:"is_featured"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
}

// TimberTypeResponse groups products by timber type for browsing
type TimberTypeResponse struct {
	TimberType   string `json:"timber_type"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url,omitempty"`
	VariantCount int64  `json:"variant_count"`
}

// QuoteResponse is a price calculation for a product and quantity
type QuoteResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Unit           string          `json:"unit"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	CanOrder       bool            `json:"can_order"`
}

// ToProductResponse converts a domain product to its response representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		TimberType:      p.TimberType,
		Category:        p.Category.String(),
		Grade:           p.Grade,
		Dimensions:      p.Dimensions.Label,
		Thickness:       p.Dimensions.Thickness,
		Width:           p.Dimensions.Width,
		Length:          p.Dimensions.Length,
		Unit:            p.Unit,
		PricePerUnit:    p.PricePerUnit,
		QuantityInStock: p.QuantityInStock,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		IsFeatured:      p.IsFeatured,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

// ToProductResponses converts domain products to response representations
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
