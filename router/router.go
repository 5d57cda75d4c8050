package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/controllers"
	"github.com/chenpihouse/restaurant-app/middlewares"
	"github.com/chenpihouse/restaurant-app/repository"
	"github.com/chenpihouse/restaurant-app/search"
	"github.com/chenpihouse/restaurant-app/services"
)

// SetupRouter wires stores, services and controllers onto the route tree.
// searchCache and events are optional; tests pass nil for both.
func SetupRouter(db *gorm.DB, searchCache *search.Cache, events services.OrderEventPublisher) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	catalog := repository.NewGormCatalog(db)
	carts := repository.NewGormCartRepository(db)
	orders := repository.NewGormOrderRepository(db)

	engine := search.NewEngine(catalog)
	if searchCache != nil {
		engine = engine.WithCache(searchCache)
	}

	cartService := services.NewCartService(carts, catalog)
	orderService := services.NewOrderService(orders, carts, events)

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	menuCtrl := controllers.NewMenuController(db)
	dishCtrl := controllers.NewDishController(db)
	productCtrl := controllers.NewProductController(db)
	searchCtrl := controllers.NewSearchController(engine)
	cartCtrl := controllers.NewCartController(cartService)
	orderCtrl := controllers.NewOrderController(orderService)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/search", searchCtrl.Search)

	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:slug", restaurantCtrl.GetRestaurantBySlug)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:slug", menuCtrl.GetMenuBySlug)
	r.GET("/dishes", dishCtrl.GetAllDishes)
	r.GET("/dishes/:slug", dishCtrl.GetDishBySlug)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:slug", productCtrl.GetProductBySlug)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/logout", userCtrl.Logout)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:product_id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:product_id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.GET("/cart/delivery-check", cartCtrl.CheckDelivery)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.ListOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrder)
		auth.GET("/orders/:order_id/qrcode", orderCtrl.GetOrderQRCode)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		admin.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		admin.PATCH("/restaurants/:slug", restaurantCtrl.UpdateRestaurant)
		admin.DELETE("/restaurants/:slug", restaurantCtrl.DeleteRestaurant)

		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:slug", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:slug", menuCtrl.DeleteMenu)

		admin.POST("/dishes", dishCtrl.CreateDish)
		admin.PATCH("/dishes/:slug", dishCtrl.UpdateDish)
		admin.DELETE("/dishes/:slug", dishCtrl.DeleteDish)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:slug", productCtrl.UpdateProduct)
		admin.DELETE("/products/:slug", productCtrl.DeleteProduct)

		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	return r
}
