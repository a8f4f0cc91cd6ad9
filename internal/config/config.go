// Package config loads service and CLI configuration from TOML files, a
// .env file, and SYSPROMPTS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/sysprompts/pkg/database"
	"github.com/JaimeStill/sysprompts/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"
	AppDirName           = "sysprompts"

	EnvConfig          = "SYSPROMPTS_CONFIG"
	EnvEnv             = "SYSPROMPTS_ENV"
	EnvShutdownTimeout = "SYSPROMPTS_SHUTDOWN_TIMEOUT"
	EnvVersion         = "SYSPROMPTS_VERSION"
)

// DatabaseEnv names the environment overrides for the database section.
var DatabaseEnv = &database.Env{
	DSN:             "SYSPROMPTS_DATABASE_URL",
	Host:            "SYSPROMPTS_DB_HOST",
	Port:            "SYSPROMPTS_DB_PORT",
	Name:            "SYSPROMPTS_DB_NAME",
	User:            "SYSPROMPTS_DB_USER",
	Password:        "SYSPROMPTS_DB_PASSWORD",
	SSLMode:         "SYSPROMPTS_DB_SSL_MODE",
	MaxOpenConns:    "SYSPROMPTS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SYSPROMPTS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SYSPROMPTS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SYSPROMPTS_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Backend:          "SYSPROMPTS_STORAGE_BACKEND",
	Dir:              "SYSPROMPTS_STORAGE_DIR",
	ContainerName:    "SYSPROMPTS_STORAGE_CONTAINER_NAME",
	ConnectionString: "SYSPROMPTS_STORAGE_CONNECTION_STRING",
	AccountURL:       "SYSPROMPTS_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration shared by the server, the CLI, and the
// migration tool.
type Config struct {
	Logging         LoggingConfig   `toml:"logging"`
	Server          ServerConfig    `toml:"server"`
	API             APIConfig       `toml:"api"`
	Storage         storage.Config  `toml:"storage"`
	Database        database.Config `toml:"database"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SYSPROMPTS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// UsesDatabase reports whether the selected storage backend needs PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.Storage.Backend == storage.BackendPostgres
}

// Load builds the configuration in layers: base, then the config file, then
// the SYSPROMPTS_ENV overlay, then defaults and environment overrides.
//
// path selects the config file; when empty, SYSPROMPTS_CONFIG and then
// config.toml in the working directory are tried. An explicitly named file
// must exist; the implicit config.toml is optional. base may be nil and
// supplies caller defaults that files and the environment override.
func Load(path string, base *Config) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}
	if base != nil {
		*cfg = *base
	}

	explicit := path != ""
	if !explicit {
		if v := os.Getenv(EnvConfig); v != "" {
			path, explicit = v, true
		} else {
			path = BaseConfigFile
		}
	}

	if _, err := os.Stat(path); err == nil || explicit {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(loaded)
	}

	if overlay := overlayPath(path); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Logging.Merge(&overlay.Logging)
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Storage.Merge(&overlay.Storage)
	c.Database.Merge(&overlay.Database)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv, DefaultDir()); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.UsesDatabase() {
		if err := c.Database.Finalize(DatabaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

// DefaultDir returns the platform config directory for the application,
// e.g. ~/.config/sysprompts on Linux.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+AppDirName)
	}
	return filepath.Join(base, AppDirName)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// overlayPath returns config.<env>.toml next to base when SYSPROMPTS_ENV is
// set and the file exists.
func overlayPath(base string) string {
	env := os.Getenv(EnvEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
