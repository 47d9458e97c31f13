package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/jaysam/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser finds all cart lines for a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	var modelList []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	out := make([]cart.CartItem, len(modelList))
	for i := range modelList {
		out[i] = *modelList[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a cart line by ID, scoped to its owner
func (r *GormCartRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*cart.CartItem, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndProduct finds the user's cart line for a product, if any
func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartItem, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLinesByUser joins the user's cart with live product data.
// Inactive products stay visible here so checkout can reject them
// with a precise error instead of silently dropping lines.
func (r *GormCartRepository) FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	type row struct {
		ItemID         uuid.UUID
		ProductID      uuid.UUID
		ProductName    string
		TimberType     string
		Grade          string
		Dimensions     string
		Unit           string
		Quantity       int
		UnitPrice      decimal.Decimal
		AvailableStock decimal.Decimal
		ProductActive  bool
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id AS item_id,
			products.id AS product_id,
			products.name AS product_name,
			products.timber_type,
			products.grade,
			products.dimension_label AS dimensions,
			products.unit,
			cart_items.quantity,
			products.price_per_unit AS unit_price,
			products.quantity_in_stock AS available_stock,
			products.is_active AS product_active`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]cart.Line, len(rows))
	for i, r := range rows {
		out[i] = cart.Line{
			ItemID:         r.ItemID,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			TimberType:     r.TimberType,
			Grade:          r.Grade,
			Dimensions:     r.Dimensions,
			Unit:           r.Unit,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			AvailableStock: r.AvailableStock,
			ProductActive:  r.ProductActive,
		}
	}
	return out, nil
}

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	var model models.CartItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a cart line, scoped to its owner
func (r *GormCartRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItemModel{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser clears the whole cart for a user
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItemModel{}).Error
}
