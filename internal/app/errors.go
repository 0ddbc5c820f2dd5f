package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/pkg"
)

// renderError answers a failed request in the shape the client asked for:
// browsers get an error page, everything else gets the JSON envelope.
// Clients that explicitly ask for JSON get JSON even though they may also
// accept */*.
func renderError(c *gin.Context, code int, message string) {
	accept := strings.ToLower(c.GetHeader("Accept"))
	jsonOnly := strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")

	if jsonOnly || !acceptsHTML(c) {
		c.JSON(code, pkg.Response{Code: code, Message: message})
		return
	}

	renderErrorPage(c, code)
}

// renderErrorPage writes the error template for code, degrading twice:
// unmapped codes use the 500 page, and if rendering itself fails (gin panics
// when the renderer is missing) the response is plain text.
func renderErrorPage(c *gin.Context, code int) {
	defer func() {
		if recover() != nil {
			c.Data(code, "text/plain; charset=utf-8",
				[]byte(fmt.Sprintf("%d %s", code, defaultStatusText(code))))
		}
	}()

	c.HTML(code, errorPage(code), gin.H{})
}

func errorPage(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusNotFound:
		return fmt.Sprintf("errors/%d.html", code)
	default:
		return "errors/500.html"
	}
}

// acceptsHTML treats text/html, the browser wildcard */*, and an absent
// Accept header as HTML clients.
func acceptsHTML(c *gin.Context) bool {
	accept := strings.ToLower(strings.TrimSpace(c.GetHeader("Accept")))
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func defaultStatusText(code int) string {
	if text := http.StatusText(code); text != "" && code >= 400 && code < 600 {
		return text
	}
	return "Error"
}
