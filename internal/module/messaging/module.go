package messaging

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the messaging section.
type Module struct {
	handler *Handler
}

// NewModule creates a new messaging Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("messaging.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "messaging" }

// Prefix returns the URL prefix the module is mounted under.
func (m *Module) Prefix() string { return "/messaging" }

// RegisterRoutes registers the messaging page routes.
func (m *Module) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", m.handler.Index)
}
