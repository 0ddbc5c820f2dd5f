package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/middleware"
)

// Handler renders pages for the project management section.
type Handler struct{}

// NewHandler creates a new project page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Index renders the project management dashboard.
// GET /project/
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "project/index.html", gin.H{
		"Active":    "project",
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}
