package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chenpihouse/restaurant-app/search"
	"github.com/chenpihouse/restaurant-app/utils"
)

type SearchController struct {
	Engine *search.Engine
}

func NewSearchController(engine *search.Engine) *SearchController {
	return &SearchController{Engine: engine}
}

// Search handles GET /search?query=...&filter=...&page=...&limit=...
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("query")
	filter := search.EntityType(c.DefaultQuery("filter", string(search.EntityRestaurant)))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("page must be a positive integer"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(search.DefaultLimit)))
	if err != nil || limit < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
		return
	}

	result, err := sc.Engine.Search(c.Request.Context(), query, filter, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSONWithMeta(c, http.StatusOK, "Search results", result.Results, gin.H{
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
		"pages": result.Pages,
	})
}
