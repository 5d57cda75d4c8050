package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus optionally filters by restaurant slug:
// GET /menus?restaurant=<slug>
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	query := mc.DB.Order("id asc")
	if restaurant := c.Query("restaurant"); restaurant != "" {
		query = query.Where("restaurant_slug = ?", restaurant)
	}

	var menus []models.Menu
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

func (mc *MenuController) GetMenuBySlug(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.Where("slug = ?", c.Param("slug")).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		Slug           string `json:"slug" binding:"required"`
		Name           string `json:"name" binding:"required"`
		Description    string `json:"description"`
		RestaurantSlug string `json:"restaurant_slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	missing, err := missingSlugs(mc.DB, &models.Restaurant{}, []string{req.RestaurantSlug})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest, unresolvableSlugError("restaurant", missing))
		return
	}

	menu := models.Menu{
		Slug:           req.Slug,
		Name:           req.Name,
		Description:    req.Description,
		RestaurantSlug: req.RestaurantSlug,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.Where("slug = ?", c.Param("slug")).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu not found"))
		return
	}

	var req struct {
		Slug           *string `json:"slug"`
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		RestaurantSlug *string `json:"restaurant_slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Slug != nil && *req.Slug != menu.Slug {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slug cannot be changed"))
		return
	}

	if req.RestaurantSlug != nil {
		missing, err := missingSlugs(mc.DB, &models.Restaurant{}, []string{*req.RestaurantSlug})
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if len(missing) > 0 {
			utils.RespondError(c, http.StatusBadRequest, unresolvableSlugError("restaurant", missing))
			return
		}
		menu.RestaurantSlug = *req.RestaurantSlug
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	slug := c.Param("slug")
	if err := mc.DB.Where("slug = ?", slug).Delete(&models.Menu{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"slug": slug})
}
