package sysprompts

import "context"

// System defines the public contract for system prompt operations.
//
// Lookups that find nothing return a nil prompt and a nil error. Mutations
// that target a missing id return ErrNotFound.
type System interface {
	Handler() *Handler

	Initialize(ctx context.Context) error
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, c Collection) error

	Create(ctx context.Context, p Prompt) (*Prompt, error)
	Find(ctx context.Context, id string) (*Prompt, error)
	FindByName(ctx context.Context, name string) (*Prompt, error)
	Default(ctx context.Context) (*Prompt, error)
	ForModel(ctx context.Context, model string) (*Prompt, error)
	List(ctx context.Context) ([]Prompt, error)
	Update(ctx context.Context, id string, p Prompt) (*Prompt, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*Prompt, error)
	SearchByTags(ctx context.Context, tags []string) ([]Prompt, error)

	ImportFromFile(ctx context.Context, path, name string) (*Prompt, error)
	ExportToFile(ctx context.Context, id, path string) error
}

// Resolve looks up a prompt by id, then by name. Returns ErrNotFound when
// neither matches.
func Resolve(ctx context.Context, sys System, identifier string) (*Prompt, error) {
	p, err := sys.Find(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	p, err = sys.FindByName(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(identifier)
	}
	return p, nil
}
