package middleware

import (
	"time"

	"rentals/constants"
	"rentals/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger gán X-Request-ID và ghi log mỗi request sau khi xử lý xong
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(constants.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set(constants.RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		reqLog := log.With("request_id", requestID)
		switch {
		case status >= 500:
			reqLog.Error("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		case status >= 400:
			reqLog.Warn("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		default:
			reqLog.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
