package controllers

import (
	"errors"

	apperrors "rentals/errors"
	"rentals/middleware"
	"rentals/response"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
)

// respondError ánh xạ lỗi của service sang response; chi tiết chỉ nằm trong log
func respondError(c *gin.Context, log logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrApartmentNotFound):
		response.NotFound(c, "Apartment not found")
	case errors.Is(err, apperrors.ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, apperrors.ErrOverrideNotFound):
		response.NotFound(c, "Availability override not found")
	case errors.Is(err, apperrors.ErrInvalidStatus) && !apperrors.IsAppError(err):
		response.BadRequest(c, "Invalid status. Must be one of: pending, confirmed, cancelled")
	case apperrors.IsAppError(err):
		appErr := apperrors.GetAppError(err)
		status := middleware.StatusForCode(appErr.Code)
		if status >= 500 {
			log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		response.Error(c, status, appErr.Message)
	default:
		log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.ServerError(c)
	}
}
