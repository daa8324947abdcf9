// Package rest serves the receipt entries HTTP API.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/expensekeeper/internal/common"
	"github.com/dmitrijs2005/expensekeeper/internal/logging"
	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// EntryService is the entry use-case surface the handlers depend on.
type EntryService interface {
	List(ctx context.Context, filter models.EntryFilter) ([]*models.Entry, error)
	Get(ctx context.Context, id int64) (*models.Entry, error)
	Create(ctx context.Context, fields *models.EntryFields) (*models.Entry, error)
	Update(ctx context.Context, id int64, fields *models.EntryFields) (*models.Entry, error)
}

// ImageResolver turns a stored receipt file name into a viewable URL.
type ImageResolver interface {
	ResolveURL(ctx context.Context, fileName string) (string, error)
}

type Handler struct {
	entries EntryService
	images  ImageResolver
	logger  logging.Logger
}

func NewHandler(es EntryService, ir ImageResolver, l logging.Logger) *Handler {
	return &Handler{
		entries: es,
		images:  ir,
		logger:  l.With("module", "rest"),
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", h.health)

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", h.listEntries)
		r.Post("/", h.createEntry)
		r.Get("/{id}", h.getEntry)
		r.Put("/{id}", h.updateEntry)
	})

	r.Get("/image-url", h.imageURL)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.entries.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch entries")
		return
	}
	if entries == nil {
		entries = []*models.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.entries.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch entry")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var fields models.EntryFields
	if err := decodeJSON(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.entries.Create(r.Context(), &fields)
	if err != nil {
		h.fail(w, r, err, "Failed to create entry")
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var fields models.EntryFields
	if err := decodeJSON(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.entries.Update(r.Context(), id, &fields)
	if err != nil {
		h.fail(w, r, err, "Failed to update entry")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *Handler) imageURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.images.ResolveURL(r.Context(), r.URL.Query().Get("file_name"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidArgument) {
			respondError(w, http.StatusBadRequest, "file_name is required")
			return
		}
		h.fail(w, r, err, "Failed to generate S3 URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry id")
		return 0, false
	}
	return id, true
}

// fail maps a service error onto a status code. Causes are logged and never
// sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		respondError(w, http.StatusNotFound, "Entry not found")
	case errors.Is(err, common.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, message)
	default:
		h.logger.Error(r.Context(), message, "error", err, "request_id", RequestIDFromContext(r.Context()))
		respondError(w, http.StatusInternalServerError, message)
	}
}
