package krahandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/kra"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
)

type Handler struct {
	Service *kra.Service
}

func NewHandler(service *kra.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/kra", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Delete("/", h.handleClearAll)
		r.Post("/bulk-import", h.handleBulkImport)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

type createPayload struct {
	Template       string `json:"template"`
	ManualRate     bool   `json:"manualRate"`
	KRA            string `json:"kra"`
	Weightage      string `json:"weightage"`
	GoalCompletion string `json:"goalCompletion"`
	Editable       *bool  `json:"editable"`
	Employee       string `json:"employee"`
	EmployeeID     string `json:"employeeId"`
}

func (p createPayload) toInput() kra.CreateInput {
	return kra.CreateInput{
		Template:       p.Template,
		ManualRate:     p.ManualRate,
		KRA:            p.KRA,
		Weightage:      p.Weightage,
		GoalCompletion: p.GoalCompletion,
		Editable:       p.Editable,
		Employee:       p.Employee,
		EmployeeID:     p.EmployeeID,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	record, err := h.Service.Create(r.Context(), payload.toInput())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to create KRA", reqID)
		return
	}
	api.Created(w, "KRA created", record, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	q := r.URL.Query()
	records, err := h.Service.List(r.Context(), q.Get("employeeId"), q.Get("employee"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list KRAs", reqID)
		return
	}
	api.List(w, len(records), records, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, kra.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "KRA not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to load KRA", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Template       *string `json:"template"`
		ManualRate     *bool   `json:"manualRate"`
		KRA            *string `json:"kra"`
		Weightage      *string `json:"weightage"`
		GoalCompletion *string `json:"goalCompletion"`
		Editable       *bool   `json:"editable"`
		Employee       *string `json:"employee"`
		EmployeeID     *string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	record, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), kra.UpdateInput{
		Template:       payload.Template,
		ManualRate:     payload.ManualRate,
		KRA:            payload.KRA,
		Weightage:      payload.Weightage,
		GoalCompletion: payload.GoalCompletion,
		Editable:       payload.Editable,
		Employee:       payload.Employee,
		EmployeeID:     payload.EmployeeID,
	})
	if err != nil {
		if errors.Is(err, kra.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "KRA not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update KRA", reqID)
		return
	}
	api.SuccessMessage(w, "KRA updated", record, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, kra.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "KRA not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to delete KRA", reqID)
		return
	}
	api.SuccessMessage(w, "KRA deleted", nil, reqID)
}

func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.ClearAll(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to clear KRAs", reqID)
		return
	}
	api.SuccessMessage(w, "all KRAs deleted", nil, reqID)
}

func (h *Handler) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payloads []createPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		api.Fail(w, http.StatusBadRequest, "payload must be an array of KRAs", reqID)
		return
	}
	if len(payloads) == 0 {
		api.Fail(w, http.StatusBadRequest, "payload must not be empty", reqID)
		return
	}

	rows := make([]kra.CreateInput, 0, len(payloads))
	for _, p := range payloads {
		input := p.toInput()
		if input.Editable == nil {
			// Imported rows are locked unless the row says otherwise.
			editable := false
			input.Editable = &editable
		}
		rows = append(rows, input)
	}

	result := h.Service.BulkImport(r.Context(), rows)
	api.Created(w, "bulk import completed", result, reqID)
}
