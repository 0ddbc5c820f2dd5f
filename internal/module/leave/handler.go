package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/middleware"
)

// Handler renders pages for the leave request section.
type Handler struct{}

// NewHandler creates a new leave page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Index renders the leave request dashboard.
// GET /leave/
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "leave/index.html", gin.H{
		"Active":    "leave",
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}
