package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentals/constants"
	"rentals/dto"
	"rentals/middleware"
	"rentals/models"
	"rentals/response"
	"rentals/services"
	"rentals/services/logger"
	"rentals/validator"

	"github.com/gin-gonic/gin"
)

// AuthManager đăng nhập admin
type AuthManager interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*services.Session, error)
}

// SessionCleaner xóa dữ liệu tìm kiếm gắn với một phiên
type SessionCleaner interface {
	ClearSession(ctx context.Context, sessionID string) error
}

type AuthController struct {
	auth          AuthManager
	sessions      SessionCleaner
	secureCookies bool
	logger        logger.Logger
}

func NewAuthController(auth AuthManager, sessions SessionCleaner, secureCookies bool, log logger.Logger) *AuthController {
	return &AuthController{auth: auth, sessions: sessions, secureCookies: secureCookies, logger: log}
}

func userResponse(user *models.User, expiresAt time.Time) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		Avatar:    user.Avatar,
		ExpiresAt: expiresAt,
	}
}

func (h *AuthController) setSessionCookie(c *gin.Context, session *services.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookie, session.Token, maxAge, "/", "", h.secureCookies, true)
}

// Login
// @Summary Admin login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validator.Struct(&input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setSessionCookie(c, session)
	response.Success(c, userResponse(session.User, session.ExpiresAt))
}

// Google
// @Summary Admin login with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginInput true "ID token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *AuthController) Google(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := validator.Struct(&input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session, err := h.auth.LoginWithGoogle(c.Request.Context(), input.IDToken)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setSessionCookie(c, session)
	response.Success(c, userResponse(session.User, session.ExpiresAt))
}

// safeNext chỉ cho phép redirect tới path nội bộ; trình duyệt coi "/\host" như "//host"
func safeNext(next string) string {
	const fallback = "/admin"
	decoded, err := url.PathUnescape(next)
	if err != nil || next == "" || strings.ContainsAny(decoded, "\\\r\n") {
		return fallback
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return next
}

// Callback nhận credential từ Google (redirect mode) rồi chuyển về trang admin
func (h *AuthController) Callback(c *gin.Context) {
	credential := c.Query("credential")
	if credential == "" {
		credential = c.Query("id_token")
	}
	if credential == "" {
		c.Redirect(http.StatusFound, constants.LoginPath+"?error=missing_credential")
		return
	}

	session, err := h.auth.LoginWithGoogle(c.Request.Context(), credential)
	if err != nil {
		h.logger.Warn("Google callback thất bại: %v", err)
		c.Redirect(http.StatusFound, constants.LoginPath+"?error="+url.QueryEscape("login_failed"))
		return
	}
	h.setSessionCookie(c, session)
	c.Redirect(http.StatusFound, safeNext(c.Query("state")))
}

// Logout
// @Summary Clear the session cookie
// @Tags auth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthController) Logout(c *gin.Context) {
	if h.sessions != nil {
		if err := h.sessions.ClearSession(c.Request.Context(), middleware.SessionID(c)); err != nil {
			h.logger.Warn("Không thể xóa bộ lọc của phiên: %v", err)
		}
	}
	c.SetCookie(constants.SessionCookie, "", -1, "/", "", h.secureCookies, true)
	response.Success(c, nil)
}

// Me
// @Summary Current admin
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.Success(c, user)
}
