package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chenpihouse/restaurant-app/services"
	"github.com/chenpihouse/restaurant-app/utils"
)

type CartController struct {
	Service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{Service: service}
}

// GetCart returns the user's cart, lazily creating it on first access.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	cart, err := cc.Service.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", cart)
}

// AddItem handles POST /cart/items. Product accepts a numeric id or a slug.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	var req struct {
		Product  string `json:"product" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.Service.AddItem(c.Request.Context(), userID, req.Product, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", cart)
}

// UpdateItem handles PATCH /cart/items/:product_id. Quantity zero is
// rejected; removal has its own endpoint.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.Service.UpdateQuantity(c.Request.Context(), userID, uint(productID), req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", cart)
}

// RemoveItem handles DELETE /cart/items/:product_id. Removing an item that
// is not in the cart succeeds.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	cart, err := cc.Service.RemoveItem(c.Request.Context(), userID, uint(productID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item removed", cart)
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	cart, err := cc.Service.ClearCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cart)
}

// CheckDelivery handles GET /cart/delivery-check and lists line items that
// are not currently deliverable.
func (cc *CartController) CheckDelivery(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user identity missing"))
		return
	}

	ineligible, err := cc.Service.CheckDeliveryAvailability(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery availability", gin.H{
		"all_available":    len(ineligible) == 0,
		"unavailable_items": ineligible,
	})
}
