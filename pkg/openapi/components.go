package openapi

import "maps"

// Components holds reusable schemas, responses, and security schemes.
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	Responses       map[string]*Response       `json:"responses,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// NewComponents creates Components with the shared error schema and the
// standard error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    ResponseJSON("Invalid request", "Error"),
			"Unauthorized":  ResponseJSON("Missing or invalid secret key", "Error"),
			"NotFound":      ResponseJSON("Resource not found", "Error"),
			"InternalError": ResponseJSON("Internal server error", "Error"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddAPIKey registers an apiKey security scheme read from header.
func (c *Components) AddAPIKey(name, header string) {
	if c.SecuritySchemes == nil {
		c.SecuritySchemes = make(map[string]*SecurityScheme)
	}
	c.SecuritySchemes[name] = &SecurityScheme{
		Type: "apiKey",
		In:   "header",
		Name: header,
	}
}
