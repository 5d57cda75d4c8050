package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/controllers"
	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
	"github.com/chenpihouse/restaurant-app/services"
	"github.com/chenpihouse/restaurant-app/utils"
)

var cartDBCounter int

func setupTestDBForCart() (*gorm.DB, models.Product) {
	cartDBCounter++
	dsn := fmt.Sprintf("file:ctrlcart%d?mode=memory&cache=shared", cartDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{})
	if err != nil {
		panic(err)
	}
	product := models.Product{
		Slug:                 "chenpi-candy",
		Name:                 "Chen Pi Candy",
		Price:                15.00,
		Category:             "snacks",
		AvailableForDelivery: true,
		Stock:                30,
	}
	db.Create(&product)
	return db, product
}

// fakeAuth stands in for the JWT middleware and pins the request to user 1.
func fakeAuth(c *gin.Context) {
	c.Set("user_id", uint(1))
	c.Set("role", "customer")
	c.Next()
}

func setupCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	svc := services.NewCartService(
		repository.NewGormCartRepository(db),
		repository.NewGormCatalog(db),
	)
	cartCtrl := controllers.NewCartController(svc)

	authed := router.Group("/", fakeAuth)
	authed.GET("/cart", cartCtrl.GetCart)
	authed.POST("/cart/items", cartCtrl.AddItem)
	authed.PATCH("/cart/items/:product_id", cartCtrl.UpdateItem)
	authed.DELETE("/cart/items/:product_id", cartCtrl.RemoveItem)
	authed.DELETE("/cart", cartCtrl.ClearCart)
	authed.GET("/cart/delivery-check", cartCtrl.CheckDelivery)
	return router
}

func postJSON(router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartAddUpdateRemoveFlow(t *testing.T) {
	utils.InitLogger()
	db, product := setupTestDBForCart()
	router := setupCartRouter(db)

	w := postJSON(router, "POST", "/cart/items", map[string]interface{}{
		"product":  product.Slug,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 30.00, data["total_price"])

	url := fmt.Sprintf("/cart/items/%d", product.ID)
	w = postJSON(router, "PATCH", url, map[string]interface{}{"quantity": 5})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, 75.00, data["total_price"])

	req, _ := http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/cart", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, 0.00, data["total_price"])
}

func TestCartAddUnknownProduct(t *testing.T) {
	utils.InitLogger()
	db, _ := setupTestDBForCart()
	router := setupCartRouter(db)

	w := postJSON(router, "POST", "/cart/items", map[string]interface{}{
		"product":  "no-such-slug",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAddZeroQuantity(t *testing.T) {
	utils.InitLogger()
	db, product := setupTestDBForCart()
	router := setupCartRouter(db)

	w := postJSON(router, "POST", "/cart/items", map[string]interface{}{
		"product":  product.Slug,
		"quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartUpdateMissingItem(t *testing.T) {
	utils.InitLogger()
	db, product := setupTestDBForCart()
	router := setupCartRouter(db)

	url := fmt.Sprintf("/cart/items/%d", product.ID)
	w := postJSON(router, "PATCH", url, map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartDeliveryCheck(t *testing.T) {
	utils.InitLogger()
	db, product := setupTestDBForCart()
	pickupOnly := models.Product{
		Slug:                 "fresh-tofu",
		Name:                 "Fresh Tofu",
		Price:                6.00,
		AvailableForDelivery: false,
	}
	db.Create(&pickupOnly)
	router := setupCartRouter(db)

	postJSON(router, "POST", "/cart/items", map[string]interface{}{
		"product": product.Slug, "quantity": 1,
	})
	postJSON(router, "POST", "/cart/items", map[string]interface{}{
		"product": pickupOnly.Slug, "quantity": 1,
	})

	req, _ := http.NewRequest("GET", "/cart/delivery-check", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["all_available"])
	unavailable := data["unavailable_items"].([]interface{})
	assert.Equal(t, []interface{}{"Fresh Tofu"}, unavailable)
}
