package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/jaysam/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads an order with its items, taking a row lock so
// concurrent cancellations serialize on the order row
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	// Items load outside the locking clause; only the order row needs the lock
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", model.ID).
		Find(&model.Items).Error; err != nil {
		return nil, err
	}

	return model.ToDomain(), nil
}

// FindByUser finds a user's orders, paginated
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var modelList []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID),
		filter,
	)

	if err := query.
		Preload("Items").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Order(orderClause(filter)).
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(modelList), nil
}

// FindAll finds all orders, paginated
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var modelList []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	if err := query.
		Preload("Items").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Order(orderClause(filter)).
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(modelList), nil
}

// CountByUser counts a user's orders matching the filter
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts all orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new order with all of its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	model.FromDomain(o)
	return r.db.WithContext(ctx).Create(&model).Error
}

// SaveWithLock updates an existing order guarded by its version.
// Items are immutable after creation and are not touched here.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	model.FromDomain(o)

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"cancelled_at": model.CancelledAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GenerateOrderNumber produces the next sequential order number in the
// form ORD-YYYYMMDD-NNNN. It scans for the highest number already issued
// today and re-checks for collisions before returning, so concurrent
// checkouts racing on the same day do not collide on the unique index.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	today := time.Now().Format("20060102")
	prefix := "ORD-" + today + "-"

	var last models.OrderModel
	err := r.db.WithContext(ctx).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&last).Error

	nextNum := 1
	if err == nil {
		parts := strings.Split(last.OrderNumber, "-")
		if len(parts) == 3 {
			var num int
			if _, scanErr := fmt.Sscanf(parts[2], "%d", &num); scanErr == nil {
				nextNum = num + 1
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	for i := 0; i < 100; i++ {
		orderNumber := fmt.Sprintf("%s%04d", prefix, nextNum)

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("order_number = ?", orderNumber).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return orderNumber, nil
		}
		nextNum++
	}

	return "", fmt.Errorf("failed to generate unique order number for %s", today)
}

// applyFilter applies order browsing filters to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

func toDomainOrders(modelList []models.OrderModel) []order.Order {
	out := make([]order.Order, len(modelList))
	for i := range modelList {
		out[i] = *modelList[i].ToDomain()
	}
	return out
}
