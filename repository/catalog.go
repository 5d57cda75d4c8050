package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
)

// storeTimeout bounds every storage access so a slow database surfaces as
// ErrStore instead of hanging the request.
const storeTimeout = 5 * time.Second

// CatalogStore is the read-mostly collection of restaurant, menu, dish and
// product records. The cart/search/order services only ever read from it;
// writes come from the admin controllers.
type CatalogStore interface {
	FindProductByID(ctx context.Context, id uint) (*models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindDishBySlug(ctx context.Context, slug string) (*models.Dish, error)
	FindRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	FindMenuBySlug(ctx context.Context, slug string) (*models.Menu, error)

	AllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	AllDishes(ctx context.Context) ([]models.Dish, error)
	AllProducts(ctx context.Context) ([]models.Product, error)

	FindMenusBySlugs(ctx context.Context, slugs []string) ([]models.Menu, error)
	FindRestaurantsBySlugs(ctx context.Context, slugs []string) ([]models.Restaurant, error)
}

type GormCatalog struct {
	DB *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{DB: db}
}

func (g *GormCatalog) FindProductByID(ctx context.Context, id uint) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var product models.Product
	if err := g.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &product, nil
}

func (g *GormCatalog) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var product models.Product
	if err := g.DB.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &product, nil
}

func (g *GormCatalog) FindDishBySlug(ctx context.Context, slug string) (*models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var dish models.Dish
	if err := g.DB.WithContext(ctx).Where("slug = ?", slug).First(&dish).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &dish, nil
}

func (g *GormCatalog) FindRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var restaurant models.Restaurant
	if err := g.DB.WithContext(ctx).Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &restaurant, nil
}

func (g *GormCatalog) FindMenuBySlug(ctx context.Context, slug string) (*models.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var menu models.Menu
	if err := g.DB.WithContext(ctx).Where("slug = ?", slug).First(&menu).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &menu, nil
}

func (g *GormCatalog) AllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var restaurants []models.Restaurant
	if err := g.DB.WithContext(ctx).Order("id asc").Find(&restaurants).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return restaurants, nil
}

func (g *GormCatalog) AllDishes(ctx context.Context) ([]models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var dishes []models.Dish
	if err := g.DB.WithContext(ctx).Order("id asc").Find(&dishes).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return dishes, nil
}

func (g *GormCatalog) AllProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var products []models.Product
	if err := g.DB.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return products, nil
}

func (g *GormCatalog) FindMenusBySlugs(ctx context.Context, slugs []string) ([]models.Menu, error) {
	if len(slugs) == 0 {
		return []models.Menu{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var menus []models.Menu
	if err := g.DB.WithContext(ctx).Where("slug IN ?", slugs).Find(&menus).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return menus, nil
}

func (g *GormCatalog) FindRestaurantsBySlugs(ctx context.Context, slugs []string) ([]models.Restaurant, error) {
	if len(slugs) == 0 {
		return []models.Restaurant{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var restaurants []models.Restaurant
	if err := g.DB.WithContext(ctx).Where("slug IN ?", slugs).Find(&restaurants).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return restaurants, nil
}

func wrapStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
