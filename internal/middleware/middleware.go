package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys set by the middleware in this package
const (
	RequestIDKey = "requestID"
	loggerKey    = "logger"
)

// RequestIDHeader carries the request ID to and from clients
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns a request ID, stores a request-scoped logger in the
// context and logs one line per request once it completes.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		log := base.With().Str("requestID", requestID).Logger()
		c.Set(loggerKey, log)

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request completed")
	}
}

// Logger returns the request-scoped logger, or a disabled one outside RequestLogger
func Logger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(zerolog.Logger); ok {
			return &log
		}
	}
	nop := zerolog.Nop()
	return &nop
}

// ViewData wraps a page view model with the values every layout needs
func ViewData(c *gin.Context, page any) gin.H {
	return gin.H{
		"Page":      page,
		"CSRFField": CSRFFormField,
		"CSRFToken": c.GetString(CSRFContextKey),
		"Flashes":   Flashes(c),
	}
}
