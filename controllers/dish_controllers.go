package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/utils"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

func (dc *DishController) GetAllDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := dc.DB.Order("id asc").Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Slug references live inside JSON text columns, so restaurant/menu
	// filters are applied after the scan.
	restaurant := c.Query("restaurant")
	menu := c.Query("menu")
	if restaurant == "" && menu == "" {
		utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
		return
	}

	filtered := make([]models.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if restaurant != "" && !containsString(dish.GetRestaurants(), restaurant) {
			continue
		}
		if menu != "" && !containsString(dish.GetMenus(), menu) {
			continue
		}
		filtered = append(filtered, dish)
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", filtered)
}

func (dc *DishController) GetDishBySlug(c *gin.Context) {
	var dish models.Dish
	if err := dc.DB.Where("slug = ?", c.Param("slug")).First(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

type dishRequest struct {
	Slug            string   `json:"slug" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" binding:"required,gt=0"`
	Ingredients     []string `json:"ingredients"`
	Allergens       []string `json:"allergens"`
	ChenPiAge       int      `json:"chen_pi_age"`
	IsSignatureDish bool     `json:"is_signature_dish"`
	Menus           []string `json:"menus"`
	Restaurants     []string `json:"restaurants"`
	ImageUrl        string   `json:"image_url"`
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !dc.referencesResolve(c, req.Menus, req.Restaurants) {
		return
	}

	dish := models.Dish{
		Slug:            req.Slug,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ChenPiAge:       req.ChenPiAge,
		IsSignatureDish: req.IsSignatureDish,
		ImageUrl:        req.ImageUrl,
	}
	dish.SetIngredients(req.Ingredients)
	dish.SetAllergens(req.Allergens)
	dish.SetMenus(req.Menus)
	dish.SetRestaurants(req.Restaurants)

	if err := dc.DB.Create(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	var dish models.Dish
	if err := dc.DB.Where("slug = ?", c.Param("slug")).First(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Slug != dish.Slug {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slug cannot be changed"))
		return
	}

	if !dc.referencesResolve(c, req.Menus, req.Restaurants) {
		return
	}

	dish.Name = req.Name
	dish.Description = req.Description
	dish.Price = req.Price
	dish.ChenPiAge = req.ChenPiAge
	dish.IsSignatureDish = req.IsSignatureDish
	dish.ImageUrl = req.ImageUrl
	dish.SetIngredients(req.Ingredients)
	dish.SetAllergens(req.Allergens)
	dish.SetMenus(req.Menus)
	dish.SetRestaurants(req.Restaurants)

	if err := dc.DB.Save(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	slug := c.Param("slug")
	if err := dc.DB.Where("slug = ?", slug).Delete(&models.Dish{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"slug": slug})
}

// referencesResolve rejects the write when any referenced menu or restaurant
// slug does not exist. Responds on failure and returns false.
func (dc *DishController) referencesResolve(c *gin.Context, menus, restaurants []string) bool {
	missing, err := missingSlugs(dc.DB, &models.Menu{}, menus)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return false
	}
	if len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest, unresolvableSlugError("menu", missing))
		return false
	}

	missing, err = missingSlugs(dc.DB, &models.Restaurant{}, restaurants)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return false
	}
	if len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest, unresolvableSlugError("restaurant", missing))
		return false
	}
	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
