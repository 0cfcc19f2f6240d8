package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorLogger writes one access line per request and recovers from panics with a JSON 500.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logging.Ctx(c.Request.Context()).Error().
					Err(err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			}

			logRequest(c, start)
		}()

		c.Next()
	}
}

func logRequest(c *gin.Context, start time.Time) {
	status := c.Writer.Status()
	l := logging.Ctx(c.Request.Context())

	var ev *zerolog.Event
	switch {
	case status >= http.StatusInternalServerError || len(c.Errors) > 0:
		ev = l.Error()
	case status >= http.StatusBadRequest:
		ev = l.Warn()
	default:
		ev = l.Info()
	}

	ev = ev.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Int("status", status).
		Str("client_ip", c.ClientIP()).
		Dur("latency", time.Since(start))

	if uid := c.GetInt64("user_id"); uid != 0 {
		ev = ev.Int64("user_id", uid).Str("role", c.GetString("role"))
	}
	if len(c.Errors) > 0 {
		ev = ev.Str("errors", c.Errors.String())
	}
	ev.Msg("request")
}
