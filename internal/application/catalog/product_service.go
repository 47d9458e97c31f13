package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog browsing and product administration
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	dims, err := catalog.NewDimensions(req.DimensionLabel, req.Thickness, req.Width, req.Length)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.TimberType, req.Category, req.Grade, dims, req.Unit, req.PricePerUnit, req.QuantityInStock)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.ImageURL = req.ImageURL

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products matching the browsing filters, paginated
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	if !filter.IncludeInactive {
		domainFilter.Filters["is_active"] = true
	}
	if filter.TimberType != "" {
		domainFilter.Filters["timber_type"] = filter.TimberType
	}
	if filter.Category != nil {
		domainFilter.Filters["category"] = filter.Category.String()
	}
	if filter.Grade != "" {
		domainFilter.Filters["grade"] = filter.Grade
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.MinLength != nil {
		domainFilter.Filters["min_length"] = *filter.MinLength
	}
	if filter.MaxLength != nil {
		domainFilter.Filters["max_length"] = *filter.MaxLength
	}
	if filter.FeaturedOnly {
		domainFilter.Filters["is_featured"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Featured retrieves the products highlighted on the storefront
func (s *ProductService) Featured(ctx context.Context, limit int) ([]ProductResponse, error) {
	if limit <= 0 {
		limit = 8
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// TimberTypes retrieves the distinct timber types for grouped browsing
func (s *ProductService) TimberTypes(ctx context.Context) ([]TimberTypeResponse, error) {
	summaries, err := s.productRepo.FindTimberTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TimberTypeResponse, len(summaries))
	for i, t := range summaries {
		out[i] = TimberTypeResponse{
			TimberType:   t.TimberType,
			Category:     t.Category.String(),
			ImageURL:     t.ImageURL,
			VariantCount: t.VariantCount,
		}
	}
	return out, nil
}

// SizeVariants retrieves all active size variants of one timber type,
// ordered by dimensions
func (s *ProductService) SizeVariants(ctx context.Context, timberType string) ([]ProductResponse, error) {
	products, err := s.productRepo.FindActiveByTimberType(ctx, timberType)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Quote computes the price for a quantity of a product and whether the
// order could currently be fulfilled
func (s *ProductService) Quote(ctx context.Context, productID uuid.UUID, quantity int) (*QuoteResponse, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(quantity))
	return &QuoteResponse{
		ProductID:      product.ID,
		UnitPrice:      product.PricePerUnit,
		Unit:           product.Unit,
		Quantity:       quantity,
		TotalPrice:     product.PricePerUnit.Mul(qty),
		AvailableStock: product.QuantityInStock,
		CanOrder:       product.HasStockFor(qty),
	}, nil
}

// Update modifies a product's descriptive attributes
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Grade, req.Description, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetPrice updates a product's unit price
func (s *ProductService) SetPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrice(price); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AdjustStock sets a product's absolute stock level
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetFeatured toggles a product's storefront featured flag
func (s *ProductService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.SetFeatured(featured)
	return s.productRepo.SaveWithLock(ctx, product)
}

// Deactivate soft-deletes a product from the storefront
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := product.Deactivate(); err != nil {
		return err
	}

	return s.productRepo.SaveWithLock(ctx, product)
}

// Activate restores a deactivated product
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := product.Activate(); err != nil {
		return err
	}

	return s.productRepo.SaveWithLock(ctx, product)
}
