package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"rentals/constants"
	"rentals/models"
	"rentals/response"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Khóa lưu trong gin.Context
const (
	ContextSessionID = "sessionId"
	ContextUser      = "user"
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextLocale    = "locale"
	ContextRequestID = "requestId"
)

// Authenticator đổi token phiên thành user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Các đường dẫn không cần đăng nhập: trang chủ, nhóm login, callback auth và API công khai
var publicPaths = []string{
	"/",
	"/ping",
}

var publicPrefixes = []string{
	"/login",
	"/auth/",
	"/swagger/",
	"/api/v1/apartments",
	"/api/v1/bookings",
	"/api/v1/locale",
	"/api/v1/auth/login",
	"/api/v1/auth/google",
	"/api/v1/auth/logout",
}

// IsPublicPath cho biết path có nằm trong allow-list không
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// tokenFromRequest đọc cookie access_token, sau đó tới header Authorization
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(constants.SessionCookie); err == nil && token != "" {
		return token
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// SessionMiddleware gán sessionId cho mọi request, đọc user từ cookie phiên và
// chặn request chưa đăng nhập tới các đường dẫn ngoài allow-list
func SessionMiddleware(auth Authenticator, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(constants.SessionIDHeader)
		if sessionID == "" {
			// Tạo sessionId mới
			sessionID = uuid.NewString()
		}
		c.Set(ContextSessionID, sessionID)
		c.Writer.Header().Set(constants.SessionIDHeader, sessionID)

		if token := tokenFromRequest(c); token != "" {
			user, err := auth.Authenticate(c.Request.Context(), token)
			if err != nil {
				log.Debug("Phiên không hợp lệ: %v", err)
			} else {
				c.Set(ContextUser, user)
				c.Set(ContextUserID, user.ID)
				c.Set(ContextUserRole, user.Role)
			}
		}

		if _, ok := c.Get(ContextUser); ok || IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/ws" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		target := constants.LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// CurrentUser trả về user của phiên, nil nếu chưa đăng nhập
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SessionID trả về id phiên của request
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
