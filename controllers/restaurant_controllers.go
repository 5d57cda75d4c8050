package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Order("id asc").Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

func (rc *RestaurantController) GetRestaurantBySlug(c *gin.Context) {
	var restaurant models.Restaurant
	if err := rc.DB.Where("slug = ?", c.Param("slug")).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Slug        string `json:"slug" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		CuisineType string `json:"cuisine_type"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		ImageUrl    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		CuisineType: req.CuisineType,
		Address:     req.Address,
		Phone:       req.Phone,
		ImageUrl:    req.ImageUrl,
	}
	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// UpdateRestaurant updates everything except the slug, which is stable once
// assigned.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := rc.DB.Where("slug = ?", c.Param("slug")).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	var req struct {
		Slug        *string `json:"slug"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		CuisineType *string `json:"cuisine_type"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		ImageUrl    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Slug != nil && *req.Slug != restaurant.Slug {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slug cannot be changed"))
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.CuisineType != nil {
		restaurant.CuisineType = *req.CuisineType
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.ImageUrl != nil {
		restaurant.ImageUrl = *req.ImageUrl
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	slug := c.Param("slug")
	if err := rc.DB.Where("slug = ?", slug).Delete(&models.Restaurant{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted", gin.H{"slug": slug})
}
