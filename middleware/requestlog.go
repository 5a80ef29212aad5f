package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request ID on requests and responses
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// slowRequest is the duration after which a request is logged as a warning
const slowRequest = 5 * time.Second

// RequestLogger assigns every request an ID and logs its completion. A
// well-formed incoming X-Request-ID is kept so IDs can be traced across the CMS.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		entry := log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"remote_ip":   c.ClientIP(),
			"duration_ms": duration.Milliseconds(),
		})

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed with server error")
		case duration > slowRequest:
			entry.Warn("slow request")
		default:
			entry.Info("request completed")
		}
	}
}

// RequestID returns the ID assigned by RequestLogger, if any
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
