package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
}

type GormOrderRepository struct {
	DB *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{DB: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return orders, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.DB.WithContext(ctx).Model(order).Update("status", order.Status).Error
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}
