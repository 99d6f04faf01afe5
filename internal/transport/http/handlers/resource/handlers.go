package resourcehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/resource"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
)

// Handler serves every generic entity from one set of routines; the entity
// definition is bound per route at registration time.
type Handler struct {
	Service *resource.Service
}

func NewHandler(service *resource.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, def := range resource.Definitions {
		def := def
		r.Route("/"+def.Name, func(r chi.Router) {
			r.Post("/", h.handleCreate(def))
			r.Get("/", h.handleList(def))
			r.Post("/bulk-import", h.handleBulkImport(def))
			r.Get("/{id}", h.handleGet(def))
			r.Put("/{id}", h.handleUpdate(def))
			r.Delete("/{id}", h.handleDelete(def))
			if def.Name == "annual-reports" {
				r.Get("/{id}/pdf", h.handleAnnualReportPDF)
			}
		})
	}
}

func (h *Handler) handleCreate(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
			return
		}

		doc, err := h.Service.Create(r.Context(), def, input)
		if err != nil {
			h.fail(w, err, reqID)
			return
		}
		api.Created(w, def.Name+" record created", doc, reqID)
	}
}

func (h *Handler) handleList(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		q := r.URL.Query()
		docs, err := h.Service.List(r.Context(), def, q.Get(def.IDFilter), q.Get(def.NameFilter))
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "failed to list records", reqID)
			return
		}
		api.List(w, len(docs), docs, reqID)
	}
}

func (h *Handler) handleGet(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		doc, err := h.Service.Get(r.Context(), def, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, err, reqID)
			return
		}
		api.Success(w, doc, reqID)
	}
}

func (h *Handler) handleUpdate(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
			return
		}

		doc, err := h.Service.Update(r.Context(), def, chi.URLParam(r, "id"), input)
		if err != nil {
			h.fail(w, err, reqID)
			return
		}
		api.SuccessMessage(w, def.Name+" record updated", doc, reqID)
	}
}

func (h *Handler) handleDelete(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		if err := h.Service.Delete(r.Context(), def, chi.URLParam(r, "id")); err != nil {
			h.fail(w, err, reqID)
			return
		}
		api.SuccessMessage(w, def.Name+" record deleted", nil, reqID)
	}
}

func (h *Handler) handleBulkImport(def resource.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		var rows []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			api.Fail(w, http.StatusBadRequest, "payload must be an array of records", reqID)
			return
		}
		if len(rows) == 0 {
			api.Fail(w, http.StatusBadRequest, "payload must not be empty", reqID)
			return
		}

		result := h.Service.BulkImport(r.Context(), def, rows)
		api.Created(w, "bulk import completed", result, reqID)
	}
}

func (h *Handler) handleAnnualReportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	pdf, err := h.Service.AnnualReportPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="annual-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	var fieldErr *resource.FieldError
	switch {
	case errors.As(err, &fieldErr):
		api.Fail(w, http.StatusBadRequest, fieldErr.Error(), reqID)
	case errors.Is(err, resource.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "record not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation failed", reqID)
	}
}
