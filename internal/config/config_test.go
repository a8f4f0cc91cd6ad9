package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/sysprompts/internal/config"
	"github.com/JaimeStill/sysprompts/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "20s"
version = "1.2.3"

[logging]
level = "debug"
format = "json"

[server]
host = "0.0.0.0"
port = 8080

[api]
base_path = "/v1"
max_body_size = "512KB"
secret_key = "s3cret"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]

[storage]
backend = "file"
dir = "/var/lib/sysprompts"
`

const overlayConfig = `
[server]
port = 9090

[storage]
backend = "memory"
`

func writeConfig(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"shutdown_timeout", cfg.ShutdownTimeout, "20s"},
		{"version", cfg.Version, "1.2.3"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "json"},
		{"server.addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"api.base_path", cfg.API.BasePath, "/v1"},
		{"api.max_body_size", cfg.API.MaxBodySizeBytes(), int64(512 * 1024)},
		{"api.secret_key", cfg.API.SecretKey, "s3cret"},
		{"api.cors.enabled", cfg.API.CORS.Enabled, true},
		{"api.openapi.title", cfg.API.OpenAPI.Title, "System Prompts API"},
		{"storage.backend", cfg.Storage.Backend, storage.BackendFile},
		{"storage.dir", cfg.Storage.Dir, "/var/lib/sysprompts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:3000" {
		t.Errorf("addr = %s, want 127.0.0.1:3000", cfg.Server.Addr())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base_path = %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySizeBytes() != 1<<20 {
		t.Errorf("max_body_size = %d, want 1MB", cfg.API.MaxBodySizeBytes())
	}
	if cfg.Storage.Backend != storage.BackendFile {
		t.Errorf("backend = %s, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir != config.DefaultDir() {
		t.Errorf("dir = %s, want %s", cfg.Storage.Dir, config.DefaultDir())
	}
	if cfg.Logging.SlogLevel() != slog.LevelInfo {
		t.Errorf("level = %v, want info", cfg.Logging.SlogLevel())
	}
	if cfg.UsesDatabase() {
		t.Error("file backend should not use the database")
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvEnv, "staging")

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server host: got %s, want 0.0.0.0 (from base)", cfg.Server.Host)
	}
	if cfg.Storage.Backend != storage.BackendMemory {
		t.Errorf("backend: got %s, want memory (from overlay)", cfg.Storage.Backend)
	}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	path := writeConfig(t, dir, "custom.toml", "[server]\nport = 4000\n")

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}

	t.Run("from env", func(t *testing.T) {
		t.Setenv(config.EnvConfig, path)
		cfg, err := config.Load("", nil)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.Server.Port != 4000 {
			t.Errorf("port = %d, want 4000", cfg.Server.Port)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := config.Load(filepath.Join(dir, "nope.toml"), nil); err == nil {
			t.Error("expected error for missing explicit config")
		}
	})
}

func TestLoadBase(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	base := &config.Config{Logging: config.LoggingConfig{Level: "warn"}}

	cfg, err := config.Load("", base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %s, want warn from base", cfg.Logging.Level)
	}

	writeConfig(t, dir, config.BaseConfigFile, "[logging]\nlevel = \"error\"\n")
	cfg, err = config.Load("", base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %s, want error from file", cfg.Logging.Level)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvVersion, "2.0.0")
	t.Setenv(config.EnvServerPort, "3100")
	t.Setenv(config.EnvAPISecretKey, "from-env")
	t.Setenv(config.EnvLogLevel, "trace")
	t.Setenv("SYSPROMPTS_STORAGE_DIR", "/tmp/prompts")

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3100 {
		t.Errorf("server port: got %d, want 3100", cfg.Server.Port)
	}
	if cfg.API.SecretKey != "from-env" {
		t.Errorf("secret key: got %s, want from-env", cfg.API.SecretKey)
	}
	if cfg.Logging.SlogLevel() != config.LevelTrace {
		t.Errorf("level: got %v, want trace", cfg.Logging.SlogLevel())
	}
	if cfg.Storage.Dir != "/tmp/prompts" {
		t.Errorf("storage dir: got %s, want /tmp/prompts", cfg.Storage.Dir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.DotEnvFile, "SYSPROMPTS_VERSION=9.9.9\n")
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv(config.EnvVersion) })

	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Version != "9.9.9" {
		t.Errorf("version = %s, want 9.9.9 from .env", cfg.Version)
	}
}

func TestLoadDatabaseOnlyForPostgres(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeConfig(t, dir, config.BaseConfigFile, "[storage]\nbackend = \"postgres\"\n")
	if _, err := config.Load("", nil); err == nil || !strings.Contains(err.Error(), "database") {
		t.Errorf("postgres backend without db user: err = %v, want database error", err)
	}

	writeConfig(t, dir, config.BaseConfigFile, "[storage]\nbackend = \"postgres\"\n\n[database]\nuser = \"app\"\n")
	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.UsesDatabase() || cfg.Database.Port != 5432 {
		t.Errorf("database not finalized: %+v", cfg.Database)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed toml", "[server\nport = 1", "parse config"},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`, "invalid shutdown_timeout"},
		{"bad port", "[server]\nport = 70000", "invalid port"},
		{"bad log level", "[logging]\nlevel = \"loud\"", "unknown log level"},
		{"bad log format", "[logging]\nformat = \"xml\"", "invalid format"},
		{"bad base path", "[api]\nbase_path = \"/a/b\"", "invalid base_path"},
		{"bad body size", "[api]\nmax_body_size = \"lots\"", "invalid max_body_size"},
		{"bad backend", "[storage]\nbackend = \"s3\"", "invalid backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			chdir(t, dir)

			_, err := config.Load("", nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"TRACE", config.LevelTrace, false},
		{"debug", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReplaceLogLevelNames(t *testing.T) {
	a := config.ReplaceLogLevelNames(nil, slog.Any(slog.LevelKey, config.LevelTrace))
	if a.Value.String() != "TRACE" {
		t.Errorf("trace level rendered as %q", a.Value.String())
	}

	b := config.ReplaceLogLevelNames(nil, slog.Any(slog.LevelKey, slog.LevelInfo))
	if b.Value.Any() != slog.LevelInfo {
		t.Errorf("info level rewritten to %v", b.Value)
	}
}
