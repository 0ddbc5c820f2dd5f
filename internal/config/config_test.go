package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
server:
  host: 127.0.0.1
  port: 8080
  mode: test
database:
  driver: sqlite
  sqlite:
    path: ":memory:"
log:
  level: info
  format: text
`

// writeConfigFile writes content to a temp YAML file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// validConfig returns a Config that passes Validate, for mutation in tests.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: "test",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: ":memory:"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q; want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d; want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q; want sqlite", cfg.Database.Driver)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q; want info", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d; want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d; want env override 20", cfg.Database.Pool.MaxIdleConns)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validYAML, "mode: test", "mode: production", 1))

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid server.mode, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string // empty means valid
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "trims and normalizes fields",
			mutate: func(c *Config) { c.Server.Host = "  127.0.0.1  "; c.Log.Level = "INFO" },
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Server.Host = "   " },
			wantErr: "server.host",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Server.Mode = "production" },
			wantErr: "server.mode",
		},
		{
			name:    "invalid driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "database.driver",
		},
		{
			name:    "sqlite path required",
			mutate:  func(c *Config) { c.Database.SQLite.Path = "" },
			wantErr: "database.sqlite.path",
		},
		{
			name: "postgres host required",
			mutate: func(c *Config) {
				c.Database.Driver = "postgres"
				c.Database.Postgres = PostgresConfig{Port: 5432, User: "u", DBName: "d", SSLMode: "disable"}
			},
			wantErr: "database.postgres.host",
		},
		{
			name: "postgres valid",
			mutate: func(c *Config) {
				c.Database.Driver = "postgres"
				c.Database.Postgres = PostgresConfig{Host: "db", Port: 5432, User: "u", DBName: "d", SSLMode: "disable"}
			},
		},
		{
			name: "postgres sslmode disable rejected in release mode",
			mutate: func(c *Config) {
				c.Server.Mode = "release"
				c.Database.Driver = "postgres"
				c.Database.Postgres = PostgresConfig{Host: "db", Port: 5432, User: "u", DBName: "d", SSLMode: "disable"}
			},
			wantErr: "sslmode",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "invalid cors max_age",
			mutate:  func(c *Config) { c.Server.CORS.MaxAge = "yesterday" },
			wantErr: "server.cors.max_age",
		},
		{
			name:    "negative conn_max_lifetime",
			mutate:  func(c *Config) { c.Database.Pool.ConnMaxLifetime = "-1h" },
			wantErr: "conn_max_lifetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q; want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesWhitespace(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = "  127.0.0.1  "
	cfg.Log.Level = " WARN "
	cfg.Log.Format = " JSON "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q; want trimmed", cfg.Server.Host)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "warn")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q; want %q", cfg.Log.Format, "json")
	}
}
