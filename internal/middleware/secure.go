package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// Secure returns a gin middleware that sets security-related response headers:
// X-Frame-Options, X-Content-Type-Options, X-XSS-Protection, and Referrer-Policy.
// Outside release mode the policy is relaxed so plain local HTTP traffic is
// never rejected.
func Secure(mode string) gin.HandlerFunc {
	return secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      mode != gin.ReleaseMode,
	})
}
