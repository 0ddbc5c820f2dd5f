package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	csrfCookie     = "_csrf_token"
	csrfFormField  = "_csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfContextKey = "CSRFToken"
)

// CSRF protects form submissions with signed double-submit tokens.
// A token is "hex(nonce).base64url(HMAC-SHA256(nonce, secret))".
//
// Safe methods (GET/HEAD/OPTIONS) receive a token: an existing valid cookie
// is reused, otherwise a fresh token is minted and set as a cookie
// (SameSite=Strict, Secure in release mode). The token is exposed to
// templates through the context under "CSRFToken".
//
// Mutating methods must present the cookie plus a matching copy in the
// "_csrf_token" form field or the "X-CSRF-Token" header; anything else is
// rejected with 403. Groups that should skip the check simply do not
// install this middleware.
func CSRF(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "csrf secret is required",
			})
		}
	}

	secure := gin.Mode() == gin.ReleaseMode
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if !issueToken(c, secret, secure) {
				return
			}
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if !checkToken(c, secret) {
				return
			}
		}
		c.Next()
	}
}

// GetCSRFToken returns the token the CSRF middleware stored for this request,
// or "" when the middleware did not run.
func GetCSRFToken(c *gin.Context) string {
	if v, ok := c.Get(csrfContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func issueToken(c *gin.Context, secret string, secure bool) bool {
	token, err := c.Cookie(csrfCookie)
	if err != nil || !verifyToken(token, secret) {
		token, err = mintToken(secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to generate CSRF token",
			})
			return false
		}
		// HttpOnly=false: page scripts may copy the token into request headers.
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(csrfCookie, token, 0, "/", "", secure, false)
	}
	c.Set(csrfContextKey, token)
	return true
}

func checkToken(c *gin.Context, secret string) bool {
	cookie, err := c.Cookie(csrfCookie)
	if err != nil || cookie == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing"})
		return false
	}

	submitted := c.PostForm(csrfFormField)
	if submitted == "" {
		submitted = c.GetHeader(csrfHeader)
	}
	if submitted == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing"})
		return false
	}

	if !verifyToken(cookie, secret) || !tokensEqual(cookie, submitted) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token invalid"})
		return false
	}

	c.Set(csrfContextKey, cookie)
	return true
}

func mintToken(secret string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(nonce) + "." + sign(nonce, secret), nil
}

// verifyToken checks that a token carries a valid signature for its nonce.
func verifyToken(token, secret string) bool {
	nonceHex, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(sign(nonce, secret)))
}

func sign(nonce []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(nonce)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func tokensEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
