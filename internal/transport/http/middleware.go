package httpt

import (
	"time"

	"itemsvc/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	_requestIDHeader = "X-Request-ID"
	_unmatchedRoute  = "unmatched"
)

func (h *ItemHandler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(_requestIDHeader)
		if requestID == "" {
			requestID = h.log.GenerateRequestID()
		}
		ctx := h.log.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(_requestIDHeader, requestID)

		c.Next()
	}
}

func (h *ItemHandler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method

		// The route template keeps the metric label set bounded.
		route := c.FullPath()
		if route == "" {
			route = _unmatchedRoute
		}

		h.log.LogAttrs(c.Request.Context(), logger.InfoLevel, "HTTP request",
			logger.String("method", method),
			logger.String("path", c.Request.URL.Path),
			logger.String("route", route),
			logger.Int("status", statusCode),
			logger.Duration("duration", latency),
			logger.String("client_ip", c.ClientIP()),
			logger.String("user_agent", c.Request.UserAgent()),
		)

		h.metrics.Request(method, route, statusCode, latency)

		if latency > _slowRequestThreshold {
			h.metrics.SlowRequest(method, route, statusCode, latency)
		}
	}
}
