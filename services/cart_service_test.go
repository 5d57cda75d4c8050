package services_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
	"github.com/chenpihouse/restaurant-app/services"
	"github.com/chenpihouse/restaurant-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

var dbCounter int

func setupTestDB(t *testing.T) *gorm.DB {
	dbCounter++
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	teaBrick := models.Product{
		Slug:                 "aged-chenpi-tea",
		Name:                 "Aged Chen Pi Tea",
		Price:                20.00,
		Category:             "tea",
		AvailableForDelivery: true,
		Stock:                100,
	}
	freshDuck := models.Product{
		Slug:                 "fresh-duck",
		Name:                 "Fresh Duck",
		Price:                50.00,
		Category:             "fresh",
		AvailableForDelivery: false,
		Stock:                10,
	}
	if err := db.Create(&teaBrick).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&freshDuck).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return teaBrick, freshDuck
}

func newCartService(db *gorm.DB) *services.CartService {
	return services.NewCartService(
		repository.NewGormCartRepository(db),
		repository.NewGormCatalog(db),
	)
}

func TestAddItemToEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)

	cart, err := svc.AddItem(context.Background(), 1, fmt.Sprint(tea.ID), 3)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 20.00, cart.Items[0].PriceAtAdd)
	assert.Equal(t, 60.00, cart.TotalPrice)
}

func TestAddItemBySlug(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	svc := newCartService(db)

	cart, err := svc.AddItem(context.Background(), 1, "aged-chenpi-tea", 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 40.00, cart.TotalPrice)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)

	_, err := svc.AddItem(context.Background(), 1, "no-such-product", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)

	_, err := svc.AddItem(context.Background(), 1, fmt.Sprint(tea.ID), 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	_, err = svc.AddItem(context.Background(), 1, fmt.Sprint(tea.ID), -2)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
}

func TestAddItemMergesAndKeepsPriceAtAdd(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 1)
	assert.NoError(t, err)

	// Catalog price changes after the item is in the cart.
	assert.NoError(t, db.Model(&models.Product{}).Where("id = ?", tea.ID).Update("price", 35.00).Error)

	cart, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	// The snapshot price is never refreshed on increment.
	assert.Equal(t, 20.00, cart.Items[0].PriceAtAdd)
	assert.Equal(t, 60.00, cart.TotalPrice)
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 3)
	assert.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, 1, tea.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 20.00, cart.TotalPrice)
}

func TestUpdateQuantityZeroIsRejected(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 3)
	assert.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, 1, tea.ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	// The line is untouched.
	cart, err := svc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestUpdateQuantityMissingItem(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)

	_, err := svc.UpdateQuantity(context.Background(), 1, tea.ID, 2)
	assert.ErrorIs(t, err, services.ErrItemNotInCart)
}

func TestAddThenUpdateEqualsSingleAdd(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 2)
	assert.NoError(t, err)
	viaUpdate, err := svc.UpdateQuantity(ctx, 1, tea.ID, 2)
	assert.NoError(t, err)

	viaSingleAdd, err := svc.AddItem(ctx, 2, fmt.Sprint(tea.ID), 2)
	assert.NoError(t, err)

	assert.Equal(t, viaSingleAdd.TotalPrice, viaUpdate.TotalPrice)
	assert.Equal(t, viaSingleAdd.Items[0].Quantity, viaUpdate.Items[0].Quantity)
	assert.Equal(t, viaSingleAdd.Items[0].PriceAtAdd, viaUpdate.Items[0].PriceAtAdd)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	tea, duck := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 1)
	assert.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, fmt.Sprint(duck.ID), 1)
	assert.NoError(t, err)

	once, err := svc.RemoveItem(ctx, 1, tea.ID)
	assert.NoError(t, err)
	twice, err := svc.RemoveItem(ctx, 1, tea.ID)
	assert.NoError(t, err)

	assert.Equal(t, len(once.Items), len(twice.Items))
	assert.Equal(t, once.TotalPrice, twice.TotalPrice)
	assert.Equal(t, 50.00, twice.TotalPrice)
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	before, err := svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 2)
	assert.NoError(t, err)

	cleared, err := svc.ClearCart(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, 0.0, cleared.TotalPrice)
	// Clearing empties the cart without deleting it.
	assert.Equal(t, before.ID, cleared.ID)
}

func TestTotalInvariantAcrossMutationSequence(t *testing.T) {
	db := setupTestDB(t)
	tea, duck := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 2)
	svc.AddItem(ctx, 1, fmt.Sprint(duck.ID), 1)
	svc.UpdateQuantity(ctx, 1, duck.ID, 4)
	svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 3)
	svc.RemoveItem(ctx, 1, duck.ID)

	cart, err := svc.GetCart(ctx, 1)
	assert.NoError(t, err)

	var sum float64
	seen := map[uint]bool{}
	for _, item := range cart.Items {
		// No two lines reference the same product.
		assert.False(t, seen[item.ProductID])
		seen[item.ProductID] = true
		sum += float64(item.Quantity) * item.PriceAtAdd
	}
	assert.Equal(t, sum, cart.TotalPrice)
	assert.Equal(t, 100.00, cart.TotalPrice)
}

func TestCheckDeliveryAvailability(t *testing.T) {
	db := setupTestDB(t)
	tea, duck := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 1)
	svc.AddItem(ctx, 1, fmt.Sprint(duck.ID), 1)

	ineligible, err := svc.CheckDeliveryAvailability(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Fresh Duck"}, ineligible)
}

func TestCheckDeliveryAvailabilityIsLive(t *testing.T) {
	db := setupTestDB(t)
	tea, _ := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 1)

	ineligible, err := svc.CheckDeliveryAvailability(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, ineligible)

	// Eligibility flips after the item was added; the check must see it.
	assert.NoError(t, db.Model(&models.Product{}).Where("id = ?", tea.ID).
		Update("available_for_delivery", false).Error)

	ineligible, err = svc.CheckDeliveryAvailability(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Aged Chen Pi Tea"}, ineligible)
}

func TestCartsOfDifferentUsersAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	tea, duck := seedProducts(t, db)
	svc := newCartService(db)
	ctx := context.Background()

	svc.AddItem(ctx, 1, fmt.Sprint(tea.ID), 1)
	svc.AddItem(ctx, 2, fmt.Sprint(duck.ID), 2)

	first, _ := svc.GetCart(ctx, 1)
	second, _ := svc.GetCart(ctx, 2)
	assert.Equal(t, 20.00, first.TotalPrice)
	assert.Equal(t, 100.00, second.TotalPrice)
}
