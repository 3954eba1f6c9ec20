package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS allows browser clients to reach the API from other origins.
// ALLOWED_ORIGINS is a comma-separated list; empty allows any origin, which
// suits self-hosted deployments where the gateway restricts access instead.
func CORS() gin.HandlerFunc {
	allowed := parseAllowedOrigins(os.Getenv("ALLOWED_ORIGINS"))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case len(allowed) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// OriginChecker returns the origin policy for WebSocket upgrades, matching
// the CORS middleware: empty ALLOWED_ORIGINS allows any origin.
func OriginChecker() func(r *http.Request) bool {
	allowed := parseAllowedOrigins(os.Getenv("ALLOWED_ORIGINS"))
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}

func parseAllowedOrigins(raw string) map[string]bool {
	allowed := make(map[string]bool)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}
	return allowed
}
