package utils

import (
	"attendance/logging"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger assigns every request an id and logs it once it's served
func RequestLogger(c *gin.Context) {
	start := time.Now()
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDKey, requestID)
	c.Header(RequestIDHeader, requestID)

	c.Next()

	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("errors", c.Errors.String()))
	}
	if c.Writer.Status() >= 500 {
		logging.L().Error("request", fields...)
	} else {
		logging.L().Info("request", fields...)
	}
}

// RequestID returns the id assigned by RequestLogger, empty outside of it
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
