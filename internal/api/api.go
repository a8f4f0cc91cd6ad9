// Package api assembles the API module: domain handlers, the OpenAPI
// document, and the module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/sysprompts/internal/config"
	"github.com/JaimeStill/sysprompts/internal/infrastructure"
	"github.com/JaimeStill/sysprompts/pkg/middleware"
	"github.com/JaimeStill/sysprompts/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Requests pass through CORS, request logging, and secret key checks in
// that order.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}

	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.SecretKey(cfg.API.SecretKey, runtime.Logger))

	return m, nil
}
