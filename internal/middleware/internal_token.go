package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// StaticTokenAuth guards operator endpoints such as /metrics with a shared bearer
// token. An empty token leaves the endpoint open.
func StaticTokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
			logging.Ctx(c.Request.Context()).Warn().
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Msg("operator token rejected")
			response.Abort(c, http.StatusUnauthorized, "AUTH_INVALID", "Invalid or missing token")
			return
		}
		c.Next()
	}
}
