package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger returns a middleware that logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		logger := log.With().
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("latency", latency).
			Logger()

		var lastErr error
		if last := c.Errors.Last(); last != nil {
			lastErr = last.Err
		}

		switch {
		case statusCode >= 500:
			logger.Error().Err(lastErr).Msg("Server error")
		case statusCode >= 400:
			logger.Warn().Err(lastErr).Msg("Client error")
		default:
			logger.Info().Msg("Request processed")
		}
	}
}
