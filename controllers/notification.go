package controllers

import (
	"net/http"
	"strings"
	"time"

	"rentals/constants"
	"rentals/middleware"
	"rentals/response"
	"rentals/services/logger"
	"rentals/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// NotificationController giữ kết nối websocket của admin
type NotificationController struct {
	melody   *melody.Melody
	notifier notification.Service
	logger   logger.Logger
}

func NewNotificationController(m *melody.Melody, notifier notification.Service, log logger.Logger) *NotificationController {
	ctrl := &NotificationController{melody: m, notifier: notifier, logger: log}
	m.HandleConnect(ctrl.onConnect)
	m.HandleDisconnect(ctrl.onDisconnect)
	return ctrl
}

func (h *NotificationController) onConnect(s *melody.Session) {
	userID, _ := s.Get(middleware.ContextUserID)
	h.logger.Info("Admin %v kết nối websocket", userID)
}

func (h *NotificationController) onDisconnect(s *melody.Session) {
	userID, _ := s.Get(middleware.ContextUserID)
	h.logger.Info("Admin %v ngắt websocket", userID)
}

// Connect nâng cấp request lên websocket, chỉ dành cho admin
func (h *NotificationController) Connect(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	if user.Role != constants.RoleAdmin {
		response.Forbidden(c)
		return
	}

	keys := map[string]interface{}{
		notification.SessionRoleKey: user.Role,
		middleware.ContextUserID:    user.ID,
	}
	if err := h.melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		h.logger.Warn("Không thể nâng cấp websocket: %v", err)
	}
}

// NotifyAll
// @Summary Broadcast a message to connected admins
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "{\"message\": \"...\"}"
// @Success 200 {object} response.Response
// @Router /admin/notifications [post]
func (h *NotificationController) NotifyAll(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		response.BadRequest(c, "Missing required field: message")
		return
	}

	payload, err := json.Marshal(notification.Event{Type: "admin.message", Message: req.Message, At: time.Now()})
	if err != nil {
		response.ServerError(c)
		return
	}
	if err := h.notifier.SendMessage(payload); err != nil {
		h.logger.Error("Lỗi gửi thông báo: %v", err)
		response.Error(c, http.StatusInternalServerError, "Notification failed")
		return
	}
	response.Success(c, gin.H{"sent": true})
}
