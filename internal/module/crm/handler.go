package crm

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/middleware"
)

// Handler renders pages for the customer relationship management section.
type Handler struct{}

// NewHandler creates a new CRM page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Index renders the CRM dashboard.
// GET /crm/
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "crm/index.html", gin.H{
		"Active":    "crm",
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}
