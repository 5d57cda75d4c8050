package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts supports ?category= and ?featured=true filters.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Order("id asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

type productRequest struct {
	Slug                 string   `json:"slug" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	Price                float64  `json:"price" binding:"required,gt=0"`
	Category             string   `json:"category" binding:"required"`
	Ingredients          []string `json:"ingredients"`
	AvailableForDelivery bool     `json:"available_for_delivery"`
	IsFeatured           bool     `json:"is_featured"`
	Stock                int      `json:"stock"`
	ImageUrl             string   `json:"image_url"`
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Slug:                 req.Slug,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Category:             req.Category,
		AvailableForDelivery: req.AvailableForDelivery,
		IsFeatured:           req.IsFeatured,
		Stock:                req.Stock,
		ImageUrl:             req.ImageUrl,
	}
	product.SetIngredients(req.Ingredients)

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Slug != product.Slug {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slug cannot be changed"))
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.AvailableForDelivery = req.AvailableForDelivery
	product.IsFeatured = req.IsFeatured
	product.Stock = req.Stock
	product.ImageUrl = req.ImageUrl
	product.SetIngredients(req.Ingredients)

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	slug := c.Param("slug")
	if err := pc.DB.Where("slug = ?", slug).Delete(&models.Product{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"slug": slug})
}
