package messaging

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/middleware"
)

// Handler renders pages for the messaging section.
type Handler struct{}

// NewHandler creates a new messaging page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Index renders the messaging dashboard.
// GET /messaging/
func (h *Handler) Index(c *gin.Context) {
	// Placeholder page until conversations and contacts land.
	c.HTML(http.StatusOK, "messaging/index.html", gin.H{
		"Active":    "messaging",
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}
