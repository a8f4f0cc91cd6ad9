package sysprompts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/JaimeStill/sysprompts/pkg/storage"
)

// CollectionFile is the storage key of the collection document.
const CollectionFile = "system_prompts.yaml"

const contentType = "application/yaml"

type store struct {
	docs        storage.System
	logger      *slog.Logger
	maxBodySize int64

	// mu serializes load-mutate-save cycles within the process.
	mu sync.Mutex
}

// NewSystem creates a store over docs implementing the System interface.
// maxBodySize caps HTTP request bodies accepted by the Handler.
func NewSystem(docs storage.System, logger *slog.Logger, maxBodySize int64) System {
	return &store{
		docs:        docs,
		logger:      logger.With("system", "sysprompts"),
		maxBodySize: maxBodySize,
	}
}

func (s *store) Handler() *Handler {
	return NewHandler(s, s.logger, s.maxBodySize)
}

func (s *store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.docs.Prepare(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDirectory, err)
	}

	exists, err := s.docs.Exists(ctx, CollectionFile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if exists {
		return nil
	}

	c := Collection{}
	for _, p := range Seeds() {
		c = c.Insert(p)
	}

	if err := s.save(ctx, c); err != nil {
		return err
	}

	s.logger.Info("seeded system prompts", "count", len(c), "location", s.docs.Location())
	return nil
}

func (s *store) Load(ctx context.Context) (Collection, error) {
	data, err := storage.ReadAll(ctx, s.docs, CollectionFile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Collection{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Decode(data)
}

func (s *store) Save(ctx context.Context, c Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, c)
}

func (s *store) save(ctx context.Context, c Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.docs.Upload(ctx, CollectionFile, bytes.NewReader(data), contentType); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// mutate applies fn to the current collection and saves the result while
// holding the store lock. Nothing is written when fn fails.
func (s *store) mutate(ctx context.Context, fn func(Collection) (Collection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(c)
	if err != nil {
		return err
	}

	return s.save(ctx, next)
}

func (s *store) Create(ctx context.Context, p Prompt) (*Prompt, error) {
	p = p.Clone()

	err := s.mutate(ctx, func(c Collection) (Collection, error) {
		return c.Insert(p), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("system prompt created", "id", p.ID, "name", p.Name, "default", p.IsDefault)
	return &p, nil
}

func (s *store) Find(ctx context.Context, id string) (*Prompt, error) {
	return s.query(ctx, func(c Collection) (Prompt, bool) { return c.Get(id) })
}

func (s *store) FindByName(ctx context.Context, name string) (*Prompt, error) {
	return s.query(ctx, func(c Collection) (Prompt, bool) { return c.ByName(name) })
}

func (s *store) Default(ctx context.Context) (*Prompt, error) {
	return s.query(ctx, Collection.Default)
}

func (s *store) ForModel(ctx context.Context, model string) (*Prompt, error) {
	return s.query(ctx, func(c Collection) (Prompt, bool) { return c.ForModel(model) })
}

func (s *store) query(ctx context.Context, fn func(Collection) (Prompt, bool)) (*Prompt, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := fn(c)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *store) List(ctx context.Context) ([]Prompt, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Sorted(), nil
}

func (s *store) Update(ctx context.Context, id string, p Prompt) (*Prompt, error) {
	var stored Prompt

	err := s.mutate(ctx, func(c Collection) (Collection, error) {
		next, err := c.Replace(id, p)
		if err != nil {
			return nil, err
		}
		stored, _ = next.Get(id)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("system prompt updated", "id", id, "name", stored.Name, "default", stored.IsDefault)
	return &stored, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(c Collection) (Collection, error) {
		return c.Remove(id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("system prompt deleted", "id", id)
	return nil
}

func (s *store) SetDefault(ctx context.Context, id string) (*Prompt, error) {
	var promoted Prompt

	err := s.mutate(ctx, func(c Collection) (Collection, error) {
		next, err := c.Promote(id)
		if err != nil {
			return nil, err
		}
		promoted, _ = next.Get(id)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("default system prompt set", "id", id, "name", promoted.Name)
	return &promoted, nil
}

func (s *store) SearchByTags(ctx context.Context, tags []string) ([]Prompt, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.WithAnyTag(tags), nil
}

func (s *store) ImportFromFile(ctx context.Context, path, name string) (*Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	p := New(name, string(data)).WithDescription("Imported from " + path)
	return s.Create(ctx, p)
}

func (s *store) ExportToFile(ctx context.Context, id, path string) error {
	p, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(id)
	}

	if err := os.WriteFile(path, []byte(p.Content), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	s.logger.Info("system prompt exported", "id", id, "path", path)
	return nil
}
