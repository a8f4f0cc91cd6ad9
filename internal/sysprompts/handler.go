package sysprompts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sysprompts/pkg/handlers"
	"github.com/JaimeStill/sysprompts/pkg/routes"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
const DefaultMaxBodySize int64 = 1 << 20

// Handler provides HTTP endpoints for system prompt operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// ListResponse wraps a list of prompts.
type ListResponse struct {
	Prompts []Prompt `json:"prompts"`
}

// PromptResponse wraps a single prompt.
type PromptResponse struct {
	Prompt *Prompt `json:"prompt"`
}

// NewHandler creates a Handler. A non-positive maxBodySize falls back to
// DefaultMaxBodySize.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "sysprompts"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for system prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/system-prompts",
		Tags:   []string{"System Prompts"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "GET", Pattern: "/default", Handler: h.Default, OpenAPI: Spec.Default},
			{Method: "GET", Pattern: "/model/{model}", Handler: h.ForModel, OpenAPI: Spec.ForModel},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/{id}/set-default", Handler: h.SetDefault, OpenAPI: Spec.SetDefault},
		},
	}
}

// List returns every prompt ordered by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{Prompts: prompts})
}

// Create processes a JSON body to create a new prompt.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	if err := cmd.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prompt, err := h.sys.Create(r.Context(), cmd.Prompt())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, PromptResponse{Prompt: prompt})
}

// Search returns every prompt carrying at least one of the requested tags.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var cmd SearchCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	prompts, err := h.sys.SearchByTags(r.Context(), cmd.Tags)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{Prompts: prompts})
}

// Default returns the default prompt.
func (h *Handler) Default(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.sys.Default(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if prompt == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, fmt.Errorf("%w: no default", ErrNotFound))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

// ForModel returns the prompt resolved for the model path parameter.
func (h *Handler) ForModel(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")

	prompt, err := h.sys.ForModel(r.Context(), model)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if prompt == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, fmt.Errorf("%w: no prompt for model %s", ErrNotFound, model))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

// Find returns a prompt by id, falling back to a lookup by name.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	prompt, err := Resolve(r.Context(), h.sys, r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

// Update merges the supplied fields into the prompt at id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var cmd UpdateCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	current, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if current == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, notFound(id))
		return
	}

	prompt, err := h.sys.Update(r.Context(), id, cmd.Apply(*current))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

// Delete removes the prompt at id. The default prompt cannot be deleted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, "System prompt deleted successfully")
}

// SetDefault makes the prompt at id the only default.
func (h *Handler) SetDefault(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sys.SetDefault(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, "Default system prompt set successfully")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalid, err))
		return false
	}
	return true
}
