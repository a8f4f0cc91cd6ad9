// Package sysprompts implements the system prompt domain.
// It provides the Prompt entity, the file-backed collection Store, and
// HTTP handlers for managing named, tagged system prompts with a single
// designated default.
package sysprompts

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prompt is a named block of instruction text that configures model behavior.
type Prompt struct {
	ID            string    `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	Description   *string   `yaml:"description,omitempty" json:"description"`
	Content       string    `yaml:"content" json:"content"`
	IsDefault     bool      `yaml:"is_default" json:"is_default"`
	CreatedAt     time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at" json:"updated_at"`
	Tags          []string  `yaml:"tags" json:"tags"`
	ModelSpecific *string   `yaml:"model_specific,omitempty" json:"model_specific"`
}

// New creates a Prompt with a fresh identifier and matching created and
// updated timestamps. Description and model are unset, tags are empty,
// and the prompt is not the default.
func New(name, content string) Prompt {
	now := time.Now().UTC()
	return Prompt{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
	}
}

// WithDescription returns a copy of p with the given description.
func (p Prompt) WithDescription(description string) Prompt {
	p.Description = &description
	return p
}

// WithTags returns a copy of p with its tags replaced.
func (p Prompt) WithTags(tags []string) Prompt {
	p.Tags = slices.Clone(tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// WithModelSpecific returns a copy of p targeting the given model family.
func (p Prompt) WithModelSpecific(model string) Prompt {
	p.ModelSpecific = &model
	return p
}

// SetAsDefault returns a copy of p marked as the default prompt.
func (p Prompt) SetAsDefault() Prompt {
	p.IsDefault = true
	return p
}

// UpdateContent replaces the prompt body and refreshes UpdatedAt.
func (p *Prompt) UpdateContent(content string) {
	p.Content = content
	p.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of p that shares no memory with the original.
func (p Prompt) Clone() Prompt {
	c := p
	c.Tags = slices.Clone(p.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	if p.ModelSpecific != nil {
		m := *p.ModelSpecific
		c.ModelSpecific = &m
	}
	return c
}

// HasTag reports whether tag appears in the prompt's tag list.
func (p Prompt) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Model returns the model family the prompt targets, or "" when unset.
func (p Prompt) Model() string {
	if p.ModelSpecific == nil {
		return ""
	}
	return *p.ModelSpecific
}

// MatchesModel reports whether the prompt's model family and model overlap
// in either direction: "gpt-4" matches "gpt-4o" and "gpt-4o" matches "gpt-4".
// An empty model family or query never matches.
func (p Prompt) MatchesModel(model string) bool {
	m := p.Model()
	if m == "" || model == "" {
		return false
	}
	return strings.Contains(model, m) || strings.Contains(m, model)
}

// CreateCommand carries the data needed to create a new system prompt.
type CreateCommand struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	ModelSpecific *string  `json:"model_specific"`
	IsDefault     *bool    `json:"is_default"`
}

// Validate reports ErrInvalid when required fields are missing.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name is required")
	}
	if c.Content == "" {
		return invalid("content is required")
	}
	return nil
}

// Prompt builds a new Prompt from the command.
func (c CreateCommand) Prompt() Prompt {
	p := New(c.Name, c.Content)
	if c.Description != nil {
		p = p.WithDescription(*c.Description)
	}
	if c.Tags != nil {
		p = p.WithTags(c.Tags)
	}
	if c.ModelSpecific != nil {
		p = p.WithModelSpecific(*c.ModelSpecific)
	}
	if c.IsDefault != nil && *c.IsDefault {
		p = p.SetAsDefault()
	}
	return p
}

// UpdateCommand carries a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Content       *string  `json:"content"`
	Tags          []string `json:"tags"`
	ModelSpecific *string  `json:"model_specific"`
}

// Apply merges the supplied fields into p. A content change goes through
// UpdateContent so UpdatedAt is refreshed.
func (c UpdateCommand) Apply(p Prompt) Prompt {
	p = p.Clone()
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p = p.WithDescription(*c.Description)
	}
	if c.Content != nil {
		p.UpdateContent(*c.Content)
	}
	if c.Tags != nil {
		p = p.WithTags(c.Tags)
	}
	if c.ModelSpecific != nil {
		p = p.WithModelSpecific(*c.ModelSpecific)
	}
	return p
}

// SearchCommand carries the tag query for a search.
type SearchCommand struct {
	Tags []string `json:"tags"`
}
