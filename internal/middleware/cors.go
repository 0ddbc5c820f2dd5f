package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig controls which cross-origin requests receive CORS headers.
// An empty AllowOrigins list means no origin is allowed.
type CORSConfig struct {
	AllowOrigins []string // "*" allows every origin
	AllowMethods []string
	AllowHeaders []string
	MaxAge       string // preflight cache lifetime in seconds
}

// DefaultCORSConfig allows every origin with the methods and headers the
// page routes respond to. Release mode narrows AllowOrigins before use.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-CSRF-Token"},
		MaxAge:       "86400",
	}
}

// CORSWithConfig returns a middleware that answers cross-origin requests
// according to cfg. Requests without an Origin header pass through untouched,
// and disallowed origins get no CORS headers at all. Preflight OPTIONS
// requests are answered with 204.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	wildcard := len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*"

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		// Responses differ by Origin once CORS is in play.
		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case wildcard:
			c.Header("Access-Control-Allow-Origin", "*")
		case matchOrigin(cfg.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
		default:
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Max-Age", cfg.MaxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func matchOrigin(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == origin || a == "*" {
			return true
		}
	}
	return false
}
