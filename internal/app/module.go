package app

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Module defines the contract for a self-registering product module.
// Each module owns a URL prefix and registers its routes on the router
// group mounted at that prefix.
type Module interface {
	// Name returns the unique module identifier, e.g. "crm".
	Name() string
	// Prefix returns the unique URL prefix, e.g. "/crm".
	Prefix() string
	// RegisterRoutes registers the module's routes on g, which is already
	// mounted under Prefix().
	RegisterRoutes(g *gin.RouterGroup)
}

// Registry is the ordered, immutable collection of product modules assembled
// once at startup. Construction validates that names and URL prefixes are
// well-formed and unique, so prefix-based dispatch is unambiguous before the
// listener ever binds.
type Registry struct {
	modules []Module
}

// NewRegistry builds a Registry from the given modules in order.
// It fails when a module is nil, a name is empty or duplicated, or a prefix
// is malformed (must start with '/', must not end with '/') or collides with
// an already-accepted prefix. Any such error is a configuration error and is
// fatal at startup.
func NewRegistry(modules ...Module) (*Registry, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("at least one module is required")
	}

	names := make(map[string]struct{}, len(modules))
	prefixes := make(map[string]struct{}, len(modules))

	for i, m := range modules {
		if m == nil {
			return nil, fmt.Errorf("module at index %d is nil", i)
		}

		name := m.Name()
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("module at index %d has an empty name", i)
		}
		if _, exists := names[name]; exists {
			return nil, fmt.Errorf("duplicate module name %q", name)
		}

		prefix := m.Prefix()
		if err := validatePrefix(prefix); err != nil {
			return nil, fmt.Errorf("module %q: %w", name, err)
		}
		if _, exists := prefixes[prefix]; exists {
			return nil, fmt.Errorf("duplicate url prefix %q (module %q)", prefix, name)
		}

		names[name] = struct{}{}
		prefixes[prefix] = struct{}{}
	}

	return &Registry{modules: append([]Module(nil), modules...)}, nil
}

// Modules returns the registered modules in registration order.
// The returned slice is a copy; the registry itself is never mutated after
// construction.
func (r *Registry) Modules() []Module {
	return append([]Module(nil), r.modules...)
}

// validatePrefix checks that a module URL prefix is usable for route mounting.
func validatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("url prefix is empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("url prefix %q must start with '/'", prefix)
	}
	if prefix == "/" || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("url prefix %q must not end with '/'", prefix)
	}
	return nil
}
