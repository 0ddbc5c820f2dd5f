package leave

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the leave request section.
type Module struct {
	handler *Handler
}

// NewModule creates a new leave Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("leave.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leave" }

// Prefix returns the URL prefix the module is mounted under.
func (m *Module) Prefix() string { return "/leave" }

// RegisterRoutes registers the leave page routes.
func (m *Module) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", m.handler.Index)
}
