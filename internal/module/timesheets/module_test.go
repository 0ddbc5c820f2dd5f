package timesheets

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestModuleIdentity(t *testing.T) {
	m := NewModule(NewHandler())

	if m.Name() != "timesheets" {
		t.Errorf("Name() = %q; want %q", m.Name(), "timesheets")
	}
	if m.Prefix() != "/timesheets" {
		t.Errorf("Prefix() = %q; want %q", m.Prefix(), "/timesheets")
	}
}

func TestRegisterRoutes(t *testing.T) {
	r := gin.New()
	m := NewModule(NewHandler())
	m.RegisterRoutes(r.Group(m.Prefix()))

	found := false
	for _, ri := range r.Routes() {
		if ri.Method == http.MethodGet && ri.Path == "/timesheets/" {
			found = true
		}
	}
	if !found {
		t.Error("expected GET /timesheets/ to be registered")
	}
}

func TestNewModule_PanicsOnNilHandler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewModule(nil) expected panic, got none")
		}
	}()

	_ = NewModule(nil)
}
