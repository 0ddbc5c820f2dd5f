package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/dash/internal/config"
)

func boolPtr(b bool) *bool { return &b }

// testAppConfig returns a config suitable for constructing a full App in tests:
// test mode, in-memory SQLite, quiet logging.
func testAppConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:       "127.0.0.1",
			Port:       8080,
			Mode:       gin.TestMode,
			CSRFSecret: "unit-test-csrf-secret-value",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			SQLite: config.SQLiteConfig{Path: ":memory:"},
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "text",
			Color:  boolPtr(false),
		},
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) expected error, got nil")
	}
}

func TestNew_InvalidMode(t *testing.T) {
	cfg := testAppConfig()
	cfg.Server.Mode = "bogus"

	if _, err := New(cfg); err == nil {
		t.Fatal("New() expected error for invalid mode, got nil")
	}
}

// TestNew_ServesAllRoutes constructs the full application from config and
// walks the complete HTTP surface end to end, using the embedded templates.
func TestNew_ServesAllRoutes(t *testing.T) {
	a, err := New(testAppConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "text/html")
		a.engine.ServeHTTP(w, req)
		return w
	}

	// Root redirect.
	w := serve("/")
	if w.Code != http.StatusFound {
		t.Fatalf("GET / status = %d; want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("GET / Location = %q; want /dashboard", loc)
	}

	// Rendered pages.
	pages := []struct {
		path   string
		marker string
	}{
		{"/dashboard", "Dashboard"},
		{"/messaging/", "Messaging"},
		{"/crm/", "CRM"},
		{"/project/", "Projects"},
		{"/timesheets/", "Timesheets"},
		{"/leave/", "Leave"},
	}
	for _, p := range pages {
		w := serve(p.path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d; want 200", p.path, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), p.marker) {
			t.Errorf("GET %s body missing marker %q", p.path, p.marker)
		}
	}

	// Health endpoint.
	if w := serve("/health"); w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d; want 200", w.Code)
	}

	// Embedded static assets.
	if w := serve("/static/css/style.css"); w.Code != http.StatusOK {
		t.Errorf("GET /static/css/style.css status = %d; want 200", w.Code)
	}

	// Unknown routes 404.
	if w := serve("/nonexistent"); w.Code != http.StatusNotFound {
		t.Errorf("GET /nonexistent status = %d; want 404", w.Code)
	}
}

func TestIsPlaceholderCSRFSecret(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"", true},
		{"   ", true},
		{"change-me-to-a-random-secret", true},
		{"Change-Me-In-Env", true},
		{"an-actual-configured-secret", false},
	}

	for _, tt := range tests {
		if got := isPlaceholderCSRFSecret(tt.secret); got != tt.want {
			t.Errorf("isPlaceholderCSRFSecret(%q) = %v; want %v", tt.secret, got, tt.want)
		}
	}
}

func TestResolveCORSConfig(t *testing.T) {
	t.Run("configured origins win", func(t *testing.T) {
		cfg := resolveCORSConfig(gin.ReleaseMode, config.CORSConfig{
			AllowOrigins: []string{"https://dash.example.com"},
		})
		if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "https://dash.example.com" {
			t.Errorf("AllowOrigins = %v; want configured origin", cfg.AllowOrigins)
		}
	})

	t.Run("release mode denies by default", func(t *testing.T) {
		cfg := resolveCORSConfig(gin.ReleaseMode, config.CORSConfig{})
		if len(cfg.AllowOrigins) != 0 {
			t.Errorf("AllowOrigins = %v; want empty in release mode", cfg.AllowOrigins)
		}
	})

	t.Run("debug mode permissive by default", func(t *testing.T) {
		cfg := resolveCORSConfig(gin.DebugMode, config.CORSConfig{})
		if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
			t.Errorf("AllowOrigins = %v; want wildcard in debug mode", cfg.AllowOrigins)
		}
	})

	t.Run("max_age duration becomes seconds", func(t *testing.T) {
		cfg := resolveCORSConfig(gin.DebugMode, config.CORSConfig{MaxAge: "2h"})
		if cfg.MaxAge != "7200" {
			t.Errorf("MaxAge = %q; want 7200", cfg.MaxAge)
		}
	})

	t.Run("configured methods and headers override defaults", func(t *testing.T) {
		cfg := resolveCORSConfig(gin.DebugMode, config.CORSConfig{
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Accept"},
		})
		if len(cfg.AllowMethods) != 1 || cfg.AllowMethods[0] != "GET" {
			t.Errorf("AllowMethods = %v; want [GET]", cfg.AllowMethods)
		}
		if len(cfg.AllowHeaders) != 1 || cfg.AllowHeaders[0] != "Accept" {
			t.Errorf("AllowHeaders = %v; want [Accept]", cfg.AllowHeaders)
		}
	})
}

func TestValidateGinMode(t *testing.T) {
	for _, mode := range []string{gin.DebugMode, gin.ReleaseMode, gin.TestMode} {
		if err := validateGinMode(mode); err != nil {
			t.Errorf("validateGinMode(%q) error: %v", mode, err)
		}
	}
	if err := validateGinMode("production"); err == nil {
		t.Error("validateGinMode(production) expected error, got nil")
	}
}

// --- Run lifecycle ---

// stubServer implements the httpServer seam for Run tests.
type stubServer struct {
	listenErr  error
	shutdownCh chan struct{}
	shutdown   bool
}

func (s *stubServer) ListenAndServe() error {
	if s.listenErr != nil {
		return s.listenErr
	}
	<-s.shutdownCh
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.shutdown = true
	close(s.shutdownCh)
	return nil
}

func TestRun_NilApp(t *testing.T) {
	var a *App
	if err := a.Run(); err == nil {
		t.Fatal("Run() on nil app expected error, got nil")
	}
}

func TestRun_ServerErrorPropagates(t *testing.T) {
	orig := newHTTPServer
	defer func() { newHTTPServer = orig }()

	listenErr := errors.New("bind failed")
	newHTTPServer = func(addr string, handler http.Handler) httpServer {
		return &stubServer{listenErr: listenErr}
	}

	a := &App{engine: gin.New(), cfg: testAppConfig()}
	err := a.Run()
	if err == nil || !strings.Contains(err.Error(), "bind failed") {
		t.Fatalf("Run() error = %v; want wrapped bind failure", err)
	}
}

func TestRun_GracefulShutdownOnSignal(t *testing.T) {
	origNew := newHTTPServer
	origNotify := notifyContext
	defer func() {
		newHTTPServer = origNew
		notifyContext = origNotify
	}()

	srv := &stubServer{shutdownCh: make(chan struct{})}
	newHTTPServer = func(addr string, handler http.Handler) httpServer {
		return srv
	}

	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	a := &App{engine: gin.New(), cfg: testAppConfig()}
	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	cancel() // simulate SIGINT/SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error after shutdown signal: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after shutdown signal")
	}

	if !srv.shutdown {
		t.Error("expected Shutdown to be called on the server")
	}
}
