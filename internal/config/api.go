package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/sysprompts/pkg/formatting"
	"github.com/JaimeStill/sysprompts/pkg/middleware"
	"github.com/JaimeStill/sysprompts/pkg/openapi"
)

const (
	EnvAPIBasePath    = "SYSPROMPTS_API_BASE_PATH"
	EnvAPIMaxBodySize = "SYSPROMPTS_API_MAX_BODY_SIZE"
	EnvAPISecretKey   = "SYSPROMPTS_SECRET_KEY"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SYSPROMPTS_CORS_ENABLED",
	Origins:          "SYSPROMPTS_CORS_ORIGINS",
	AllowedMethods:   "SYSPROMPTS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SYSPROMPTS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SYSPROMPTS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SYSPROMPTS_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "SYSPROMPTS_OPENAPI_TITLE",
	Description: "SYSPROMPTS_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, authentication, CORS, and
// OpenAPI document settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	SecretKey   string                `toml:"secret_key"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes. Finalize has already
// rejected sizes that do not parse.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.SecretKey != "" {
		c.SecretKey = overlay.SecretKey
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv(EnvAPISecretKey); v != "" {
		c.SecretKey = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("invalid base_path %q: must be a single-level path such as /api", c.BasePath)
	}
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("invalid max_body_size: must be positive")
	}
	return nil
}
