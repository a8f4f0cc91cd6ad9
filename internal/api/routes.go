package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/sysprompts/internal/config"
	"github.com/JaimeStill/sysprompts/internal/sysprompts"
	"github.com/JaimeStill/sysprompts/pkg/middleware"
	"github.com/JaimeStill/sysprompts/pkg/openapi"
	"github.com/JaimeStill/sysprompts/pkg/routes"
)

// OpenAPIPath serves the generated OpenAPI document within the module.
const OpenAPIPath = "/openapi.json"

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := domain.Groups()
	routes.Register(mux, groups...)

	doc, err := BuildSpec(cfg, groups...)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET "+OpenAPIPath, openapi.ServeSpec(doc))

	return nil
}

// BuildSpec renders the OpenAPI document describing groups.
func BuildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(sysprompts.Schemas())
	if cfg.API.SecretKey != "" {
		spec.RequireAPIKey("secretKey", middleware.SecretKeyHeader)
	}

	routes.Describe(spec, groups...)

	doc, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	return doc, nil
}
