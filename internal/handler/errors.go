package handler

import (
	"errors"
	"net/http"

	"inventory-api/pkg/apperror"
	"inventory-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service-layer errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInsufficientStock),
		errors.Is(err, apperror.ErrInsufficientAvailable),
		errors.Is(err, apperror.ErrInsufficientReserved):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, response.Error(status, err.Error()))
}

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	id, _ := userID.(string)
	return id
}
