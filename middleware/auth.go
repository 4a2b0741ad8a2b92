package middleware

import (
	"net/http"

	apperrors "rentals/errors"
	"rentals/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware yêu cầu phiên đăng nhập và (nếu có) một trong các role
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(user.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler trả lời các lỗi handler để lại qua c.Error mà chưa ghi response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if appErr := apperrors.GetAppError(err); appErr != nil {
			response.Error(c, StatusForCode(appErr.Code), appErr.Message)
			return
		}
		response.ServerError(c)
	}
}

// StatusForCode ánh xạ mã lỗi nghiệp vụ sang HTTP status
func StatusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeMissingToken, apperrors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeApartmentNotFound, apperrors.ErrCodeBookingNotFound, apperrors.ErrCodeOverrideNotFound,
		apperrors.ErrCodeUserNotFound, apperrors.ErrCodeInvalidLocale, apperrors.ErrCodeDBNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUserExists:
		return http.StatusConflict
	case apperrors.ErrCodeValidation, apperrors.ErrCodeRequiredField, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidStatus, apperrors.ErrCodeUnknownAmenity, apperrors.ErrCodeImageIndex:
		return http.StatusBadRequest
	case apperrors.ErrCodeStorage:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
