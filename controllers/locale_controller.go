package controllers

import (
	"net/http"

	"rentals/constants"
	"rentals/dto"
	"rentals/response"
	"rentals/services"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
)

const localeCookieMaxAge = 365 * 24 * 60 * 60

type LocaleController struct {
	logger logger.Logger
}

func NewLocaleController(log logger.Logger) *LocaleController {
	return &LocaleController{logger: log}
}

// Get
// @Summary Locale of the NEXT_LOCALE cookie
// @Tags locale
// @Produce json
// @Success 200 {object} dto.LocaleResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /locale [get]
func (h *LocaleController) Get(c *gin.Context) {
	raw, _ := c.Cookie(constants.LocaleCookie)
	locale, err := services.ResolveLocale(raw)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.LocaleResponse{Locale: locale, Supported: services.SupportedLocales()})
}

// Set
// @Summary Set the NEXT_LOCALE cookie
// @Tags locale
// @Accept json
// @Produce json
// @Param body body dto.LocaleRequest true "es | en"
// @Success 200 {object} dto.LocaleResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /locale [post]
func (h *LocaleController) Set(c *gin.Context) {
	var req dto.LocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	locale, err := services.ResolveLocale(req.Locale)
	if err != nil || req.Locale == "" {
		response.NotFound(c, "Locale not found")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.LocaleCookie, locale, localeCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, dto.LocaleResponse{Locale: locale, Supported: services.SupportedLocales()})
}
