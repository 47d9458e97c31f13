package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/catalog"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/jaysam/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByID finds a product by ID, treating inactive products as absent
func (r *GormProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds products matching the filter, paginated
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var modelList []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	query = query.
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Order(orderClause(filter))

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(modelList), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindFeatured finds active featured products for the storefront
func (r *GormProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(modelList), nil
}

// FindTimberTypes groups active products by timber type
func (r *GormProductRepository) FindTimberTypes(ctx context.Context) ([]catalog.TimberTypeSummary, error) {
	type row struct {
		TimberType   string
		Category     string
		ImageURL     string
		VariantCount int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("timber_type, MIN(category) AS category, MIN(image_url) AS image_url, COUNT(*) AS variant_count").
		Where("is_active = ?", true).
		Group("timber_type").
		Order("timber_type ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]catalog.TimberTypeSummary, len(rows))
	for i, r := range rows {
		out[i] = catalog.TimberTypeSummary{
			TimberType:   r.TimberType,
			Category:     catalog.Category(r.Category),
			ImageURL:     r.ImageURL,
			VariantCount: r.VariantCount,
		}
	}
	return out, nil
}

// FindActiveByTimberType finds the active size variants of one timber type
func (r *GormProductRepository) FindActiveByTimberType(ctx context.Context, timberType string) ([]catalog.Product, error) {
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("timber_type = ? AND is_active = ?", timberType, true).
		Order("thickness ASC, width ASC, length ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(modelList), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"timber_type":       model.TimberType,
			"category":          model.Category,
			"grade":             model.Grade,
			"dimension_label":   model.DimensionLabel,
			"thickness":         model.Thickness,
			"width":             model.Width,
			"length":            model.Length,
			"unit":              model.Unit,
			"price_per_unit":    model.PricePerUnit,
			"quantity_in_stock": model.QuantityInStock,
			"description":       model.Description,
			"image_url":         model.ImageURL,
			"is_featured":       model.IsFeatured,
			"is_active":         model.IsActive,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DecrementStock atomically subtracts quantity from the product's stock.
// The WHERE guard makes overselling impossible even under concurrent
// checkouts; zero rows affected means the stock was not sufficient.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND quantity_in_stock >= ?", id, quantity).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// RestoreStock atomically adds quantity back to the product's stock
func (r *GormProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies catalog browsing filters to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR timber_type ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active", "is_featured", "timber_type", "category", "grade":
			query = query.Where(key+" = ?", value)
		case "min_price":
			query = query.Where("price_per_unit >= ?", value)
		case "max_price":
			query = query.Where("price_per_unit <= ?", value)
		case "min_length":
			query = query.Where("length >= ?", value)
		case "max_length":
			query = query.Where("length <= ?", value)
		}
	}

	return query
}

func toDomainProducts(modelList []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, len(modelList))
	for i := range modelList {
		out[i] = *modelList[i].ToDomain()
	}
	return out
}
