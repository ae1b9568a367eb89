package styles

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptiverse/pkg/handlers"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/routes"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

// Handler provides HTTP endpoints for style profile operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "styles"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for style profile endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/styles",
		Tags:        []string{"Styles"},
		Description: "Style profile catalog, validation, and exports",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "POST", Pattern: "/validate", Handler: h.Validate, OpenAPI: Spec.Validate},
			{Method: "POST", Pattern: "/{id}/export", Handler: h.Export, OpenAPI: Spec.Export},
			{Method: "GET", Pattern: "/{id}/export", Handler: h.Snapshot, OpenAPI: Spec.Snapshot},
		},
	}
}

// List returns a paginated list of style profiles with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single style profile by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	style, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, style)
}

// Create processes a JSON body to create a new style profile.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := handlers.Decode[CreateCommand](w, r, h.logger)
	if !ok {
		return
	}

	style, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("style profile created", "id", style.ID)
	handlers.RespondJSON(w, http.StatusCreated, style)
}

// Update processes a JSON body to replace an existing style profile.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cmd, ok := handlers.Decode[UpdateCommand](w, r, h.logger)
	if !ok {
		return
	}

	style, err := h.sys.Update(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, style)
}

// Delete removes a style profile by id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching style profiles.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, ok := handlers.Decode[SearchRequest](w, r, h.logger)
	if !ok {
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Validate checks an arbitrary JSON document against the style profile schema.
// Schema violations are reported in the body with a 200 status.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	doc, ok := handlers.Decode[any](w, r, h.logger)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Validate(doc))
}

// Export writes a snapshot of the style profile to blob storage.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.sys.Export(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, export)
}

// Snapshot streams the most recent export of a style profile.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	body, err := h.sys.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", exportContentType)
	handlers.SetAttachment(w, r.PathValue("id")+".json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("stream export failed", "id", r.PathValue("id"), "error", err)
	}
}
