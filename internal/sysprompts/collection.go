package sysprompts

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Collection maps prompt ids to prompts. It is the unit of persistence:
// every Store operation loads the whole collection, transforms it, and
// saves the whole collection back.
//
// Transform methods never modify the receiver; they return a new Collection.
type Collection map[string]Prompt

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for id, p := range c {
		out[id] = p.Clone()
	}
	return out
}

// Insert returns a collection with p stored under p.ID. When p is the
// default, every other entry is demoted in the same step.
func (c Collection) Insert(p Prompt) Collection {
	out := c.Clone()
	if p.IsDefault {
		out = out.ClearDefault()
	}
	out[p.ID] = p.Clone()
	return out
}

// Replace returns a collection with the entry at id replaced wholesale by p.
// The stored prompt's ID is always id. Returns ErrNotFound if id is absent.
func (c Collection) Replace(id string, p Prompt) (Collection, error) {
	if _, ok := c[id]; !ok {
		return nil, notFound(id)
	}
	p = p.Clone()
	p.ID = id
	out := c.Clone()
	if p.IsDefault {
		out = out.ClearDefault()
	}
	out[id] = p
	return out, nil
}

// Remove returns a collection without the entry at id. Removing the
// default prompt fails with ErrDeleteDefault.
func (c Collection) Remove(id string) (Collection, error) {
	p, ok := c[id]
	if !ok {
		return nil, notFound(id)
	}
	if p.IsDefault {
		return nil, ErrDeleteDefault
	}
	out := c.Clone()
	delete(out, id)
	return out, nil
}

// ClearDefault returns a collection in which no entry is the default.
func (c Collection) ClearDefault() Collection {
	out := c.Clone()
	for id, p := range out {
		p.IsDefault = false
		out[id] = p
	}
	return out
}

// Promote returns a collection in which id is the only default.
func (c Collection) Promote(id string) (Collection, error) {
	if _, ok := c[id]; !ok {
		return nil, notFound(id)
	}
	out := c.ClearDefault()
	p := out[id]
	p.IsDefault = true
	out[id] = p
	return out, nil
}

// Sorted returns detached copies of every entry ordered by name, then id.
func (c Collection) Sorted() []Prompt {
	ids := slices.Collect(maps.Keys(c))
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Or(cmp.Compare(c[a].Name, c[b].Name), cmp.Compare(a, b))
	})

	out := make([]Prompt, 0, len(ids))
	for _, id := range ids {
		out = append(out, c[id].Clone())
	}
	return out
}

// Get returns a copy of the entry at id.
func (c Collection) Get(id string) (Prompt, bool) {
	p, ok := c[id]
	if !ok {
		return Prompt{}, false
	}
	return p.Clone(), true
}

// ByName returns the first entry named name. When several share the name,
// the one with the lowest id wins.
func (c Collection) ByName(name string) (Prompt, bool) {
	return c.first(func(p Prompt) bool { return p.Name == name })
}

// Default returns the default entry, if any.
func (c Collection) Default() (Prompt, bool) {
	return c.first(func(p Prompt) bool { return p.IsDefault })
}

// ForModel resolves the prompt for a model: an exact model_specific match,
// then a partial match in either direction, then the default.
func (c Collection) ForModel(model string) (Prompt, bool) {
	if p, ok := c.first(func(p Prompt) bool {
		return model != "" && p.Model() == model
	}); ok {
		return p, true
	}
	if p, ok := c.first(func(p Prompt) bool { return p.MatchesModel(model) }); ok {
		return p, true
	}
	return c.Default()
}

// WithAnyTag returns every entry carrying at least one of tags, ordered by
// name, then id. An empty query matches nothing.
func (c Collection) WithAnyTag(tags []string) []Prompt {
	out := []Prompt{}
	if len(tags) == 0 {
		return out
	}
	for _, p := range c.Sorted() {
		if slices.ContainsFunc(tags, p.HasTag) {
			out = append(out, p)
		}
	}
	return out
}

func (c Collection) first(match func(Prompt) bool) (Prompt, bool) {
	for _, p := range c.Sorted() {
		if match(p) {
			return p, true
		}
	}
	return Prompt{}, false
}

// Encode serializes the collection as a YAML mapping of id to prompt.
func Encode(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := yaml.Marshal(map[string]Prompt(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	return data, nil
}

// Decode parses a YAML collection document. An empty document decodes to
// an empty collection.
func Decode(data []byte) (Collection, error) {
	c := Collection{}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	if c == nil {
		c = Collection{}
	}
	for id, p := range c {
		if p.Tags == nil {
			p.Tags = []string{}
			c[id] = p
		}
	}
	return c, nil
}
