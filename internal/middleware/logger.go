package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one zerolog line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var evt *zerolog.Event
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		if p := auth.PrincipalFrom(c); p.Authenticated() {
			evt = evt.Uint("userID", p.UserID)
		}
		evt.
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Request.UserAgent()).
			Str("error_message", c.Errors.ByType(gin.ErrorTypePrivate).String()).
			Msg("gin_request")
	}
}
