package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"rentals/constants"
	"rentals/middleware"
	"rentals/models"
	"rentals/services"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, string, string) (*services.Session, error) {
	return nil, errors.New("not used")
}

func (fakeAuth) LoginWithGoogle(_ context.Context, token string) (*services.Session, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &services.Session{
		User:      &models.User{ID: "u1", Role: constants.RoleAdmin},
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

type recordingCleaner struct {
	cleared []string
}

func (r *recordingCleaner) ClearSession(_ context.Context, sessionID string) error {
	r.cleared = append(r.cleared, sessionID)
	return nil
}

func authRouter(cleaner SessionCleaner) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, c.GetHeader(constants.SessionIDHeader))
		c.Next()
	})
	h := NewAuthController(fakeAuth{}, cleaner, false, logger.Nop{})
	r.GET("/auth/callback", h.Callback)
	r.POST("/api/v1/auth/logout", h.Logout)
	return r
}

func TestCallbackRedirectStaysOnSite(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"", "/admin"},
		{"/admin/bookings?status=pending", "/admin/bookings?status=pending"},
		{"//evil.example", "/admin"},
		{`/\evil.example`, "/admin"},
		{"/%5Cevil.example", "/admin"},
		{"/%2F/evil.example", "/admin"},
		{"https://evil.example/admin", "/admin"},
		{"admin", "/admin"},
		{"/admin\r\nSet-Cookie: x=1", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			q := url.Values{"credential": {"good"}, "state": {tt.state}}
			w := do(authRouter(nil), http.MethodGet, "/auth/callback?"+q.Encode(), "")
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestCallbackFailures(t *testing.T) {
	w := do(authRouter(nil), http.MethodGet, "/auth/callback", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?error=missing_credential", w.Header().Get("Location"))

	w = do(authRouter(nil), http.MethodGet, "/auth/callback?credential=bad", "")
	assert.Equal(t, "/login?error=login_failed", w.Header().Get("Location"))
}

func TestLogoutClearsSessionFilters(t *testing.T) {
	cleaner := &recordingCleaner{}
	r := authRouter(cleaner)

	req := newJSONRequest(http.MethodPost, "/api/v1/auth/logout", "")
	req.Header.Set(constants.SessionIDHeader, "sess-9")
	w := serveRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sess-9"}, cleaner.cleared)
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.SessionCookie {
			assert.Empty(t, c.Value)
		}
	}
}
