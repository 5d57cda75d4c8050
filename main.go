package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/config"
	"github.com/chenpihouse/restaurant-app/middlewares"
	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/router"
	"github.com/chenpihouse/restaurant-app/search"
	"github.com/chenpihouse/restaurant-app/services"
	"github.com/chenpihouse/restaurant-app/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	autoMigrate(db)

	var searchCache *search.Cache
	if rdb := config.InitRedis(); rdb != nil {
		searchCache = search.NewCache(rdb, 30*time.Second)
		utils.InfoLogger.Println("Search cache enabled")
	}

	var events services.OrderEventPublisher
	if writer := config.NewKafkaWriter(); writer != nil {
		events = services.NewKafkaOrderPublisher(writer)
		defer writer.Close()
		utils.InfoLogger.Println("Order event publishing enabled")
	}

	r := router.SetupRouter(db, searchCache, events)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Dish{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
