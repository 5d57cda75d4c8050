package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
	"github.com/chenpihouse/restaurant-app/search"
	"github.com/chenpihouse/restaurant-app/services"
	"github.com/chenpihouse/restaurant-app/utils"
)

var errInternal = errors.New("internal server error")

// statusForError maps service failures onto HTTP status classes:
// validation 400, not-found 404, conflict 409, store trouble 503.
func statusForError(err error) int {
	switch {
	case errors.Is(err, search.ErrInvalidQuery),
		errors.Is(err, search.ErrUnsupportedFilter),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotInCart),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidStatusTransition),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError translates an error into the response envelope. In
// release mode 5xx details stay in the server log and the client gets a
// generic message.
func respondServiceError(c *gin.Context, err error) {
	code := statusForError(err)
	if code >= http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		if gin.Mode() == gin.ReleaseMode {
			if code == http.StatusServiceUnavailable {
				utils.RespondError(c, code, repository.ErrStore)
			} else {
				utils.RespondError(c, code, errInternal)
			}
			return
		}
	}
	utils.RespondError(c, code, err)
}

// currentUserID reads the identity resolved by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
