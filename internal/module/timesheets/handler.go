package timesheets

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/middleware"
)

// Handler renders pages for the timesheet section.
type Handler struct{}

// NewHandler creates a new timesheet page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Index renders the timesheet dashboard.
// GET /timesheets/
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "timesheets/index.html", gin.H{
		"Active":    "timesheets",
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}
