package middleware

import (
	"rentals/constants"
	"rentals/services"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
)

// LocaleMiddleware đọc cookie NEXT_LOCALE. Cookie không hợp lệ không chặn request:
// locale mặc định được dùng và GET /api/v1/locale sẽ báo not found.
func LocaleMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(constants.LocaleCookie)
		locale, err := services.ResolveLocale(raw)
		if err != nil {
			log.Debug("Locale %q không hợp lệ, dùng %s", raw, constants.DefaultLocale)
			locale = constants.DefaultLocale
		}
		c.Set(ContextLocale, locale)
		c.Next()
	}
}

// Locale trả về locale của request
func Locale(c *gin.Context) string {
	if locale := c.GetString(ContextLocale); locale != "" {
		return locale
	}
	return constants.DefaultLocale
}
