package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
)

// CartRepository serializes mutations per cart via an optimistic version
// check: Save only succeeds against the version the cart was read at, and
// returns ErrConflict otherwise so the service can re-read and retry.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type GormCartRepository struct {
	DB *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{DB: db}
}

// GetOrCreate lazily creates the user's cart on first access. The cart
// persists indefinitely; clearing empties it but never deletes it.
func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStoreErr(err)
	}

	cart = models.Cart{UserID: userID, TotalPrice: 0, Items: []models.CartItem{}}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &cart, nil
}

// Save writes the whole cart document. The version predicate makes the
// read-modify-write sequence safe against a concurrent save of the same cart.
func (r *GormCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Cart{}).
			Where("id = ? AND version = ?", cart.ID, cart.Version).
			Updates(map[string]interface{}{
				"total_price": cart.TotalPrice,
				"version":     cart.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Omit("Product").Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return ErrConflict
		}
		return wrapStoreErr(err)
	}

	cart.Version++
	return nil
}
