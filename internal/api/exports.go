package api

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/promptiverse/pkg/handlers"
	"github.com/JaimeStill/promptiverse/pkg/openapi"
	"github.com/JaimeStill/promptiverse/pkg/routes"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

const exportsPrefix = "styles/"

// exportsHandler browses style export snapshots held in blob storage.
type exportsHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newExportsHandler(
	store storage.System,
	logger *slog.Logger,
	maxListSize int32,
) *exportsHandler {
	return &exportsHandler{
		store:       store,
		logger:      logger.With("handler", "exports"),
		maxListSize: maxListSize,
	}
}

func (h *exportsHandler) routes() routes.Group {
	keyParam := &openapi.Parameter{
		Name:     "key",
		In:       "path",
		Required: true,
		Schema:   &openapi.Schema{Type: "string"},
	}

	return routes.Group{
		Prefix:      "/exports",
		Tags:        []string{"Exports"},
		Description: "Style export snapshots in blob storage",
		Schemas: map[string]*openapi.Schema{
			"BlobMeta": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"key":            {Type: "string"},
					"content_type":   {Type: "string"},
					"content_length": {Type: "integer"},
					"last_modified":  {Type: "string", Format: "date-time"},
				},
			},
			"BlobList": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"blobs":       {Type: "array", Items: openapi.SchemaRef("BlobMeta")},
					"next_marker": {Type: "string"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.list,
				OpenAPI: &openapi.Operation{
					Summary: "List style exports",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("marker", "string", "Continuation marker from a previous page", false),
						openapi.QueryParam("max_results", "integer", "Maximum blobs per page", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Export listing", "BlobList"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/download/{key...}", Handler: h.download,
				OpenAPI: &openapi.Operation{
					Summary:    "Download an export blob",
					Parameters: []*openapi.Parameter{keyParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseAttachment("Blob content", "application/octet-stream"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{key...}", Handler: h.find,
				OpenAPI: &openapi.Operation{
					Summary:    "Export blob metadata",
					Parameters: []*openapi.Parameter{keyParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Blob metadata", "BlobMeta"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *exportsHandler) list(w http.ResponseWriter, r *http.Request) {
	marker := r.URL.Query().Get("marker")

	maxResults, err := storage.ParseMaxResults(
		r.URL.Query().Get("max_results"),
		h.maxListSize,
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), exportsPrefix, marker, maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *exportsHandler) find(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), exportsPrefix+r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *exportsHandler) download(w http.ResponseWriter, r *http.Request) {
	key := exportsPrefix + r.PathValue("key")

	meta, err := h.store.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	if meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	}
	if meta.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(meta.ContentLength, 10))
	}
	handlers.SetAttachment(w, path.Base(key))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("stream export failed", "key", key, "error", err)
	}
}
