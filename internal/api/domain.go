package api

import (
	"github.com/JaimeStill/sysprompts/internal/sysprompts"
	"github.com/JaimeStill/sysprompts/pkg/routes"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts sysprompts.System
}

// NewDomain collects the domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Prompts: runtime.Prompts,
	}
}

// Groups returns the route groups of every domain system.
func (d *Domain) Groups() []routes.Group {
	return []routes.Group{
		d.Prompts.Handler().Routes(),
	}
}
