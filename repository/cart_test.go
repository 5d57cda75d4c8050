package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
)

var dbCounter int

func setupTestDB(t *testing.T) *gorm.DB {
	dbCounter++
	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGetOrCreateIsLazy(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormCartRepository(db)
	ctx := context.Background()

	var count int64
	db.Model(&models.Cart{}).Count(&count)
	assert.Equal(t, int64(0), count)

	first, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Empty(t, first.Items)

	second, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	db.Model(&models.Cart{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveRoundTripsItems(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormCartRepository(db)
	ctx := context.Background()

	product := models.Product{Slug: "tea", Name: "Tea", Price: 8.00}
	assert.NoError(t, db.Create(&product).Error)

	cart, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)

	cart.Items = append(cart.Items, models.CartItem{
		ProductID:  product.ID,
		Quantity:   2,
		PriceAtAdd: 8.00,
	})
	cart.RecomputeTotal()
	assert.NoError(t, repo.Save(ctx, cart))

	reloaded, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
	assert.Equal(t, 16.00, reloaded.TotalPrice)
	assert.Equal(t, "Tea", reloaded.Items[0].Product.Name)
}

func TestSaveDetectsConcurrentWrite(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormCartRepository(db)
	ctx := context.Background()

	product := models.Product{Slug: "tea", Name: "Tea", Price: 8.00}
	assert.NoError(t, db.Create(&product).Error)

	first, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)

	// Both copies were read at the same version.
	assert.Equal(t, first.Version, second.Version)

	first.Items = append(first.Items, models.CartItem{
		ProductID: product.ID, Quantity: 1, PriceAtAdd: 8.00,
	})
	first.RecomputeTotal()
	assert.NoError(t, repo.Save(ctx, first))

	second.Items = append(second.Items, models.CartItem{
		ProductID: product.ID, Quantity: 5, PriceAtAdd: 8.00,
	})
	second.RecomputeTotal()
	assert.ErrorIs(t, repo.Save(ctx, second), repository.ErrConflict)

	// The first writer's state is the one that stuck.
	reloaded, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 8.00, reloaded.TotalPrice)
	assert.Equal(t, 1, reloaded.Items[0].Quantity)
}

func TestSaveAfterConflictSucceedsOnReread(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormCartRepository(db)
	ctx := context.Background()

	product := models.Product{Slug: "tea", Name: "Tea", Price: 8.00}
	assert.NoError(t, db.Create(&product).Error)

	stale, _ := repo.GetOrCreate(ctx, 1)
	fresh, _ := repo.GetOrCreate(ctx, 1)

	fresh.Items = append(fresh.Items, models.CartItem{
		ProductID: product.ID, Quantity: 1, PriceAtAdd: 8.00,
	})
	fresh.RecomputeTotal()
	assert.NoError(t, repo.Save(ctx, fresh))

	stale.TotalPrice = 99
	assert.ErrorIs(t, repo.Save(ctx, stale), repository.ErrConflict)

	// Re-reading picks up the new version and the save goes through.
	retry, err := repo.GetOrCreate(ctx, 1)
	assert.NoError(t, err)
	retry.Items[0].Quantity = 3
	retry.RecomputeTotal()
	assert.NoError(t, repo.Save(ctx, retry))

	reloaded, _ := repo.GetOrCreate(ctx, 1)
	assert.Equal(t, 24.00, reloaded.TotalPrice)
}
