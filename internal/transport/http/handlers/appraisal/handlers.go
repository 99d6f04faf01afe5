package appraisalhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/appraisal"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Service *appraisal.Service
}

func NewHandler(service *appraisal.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/self-appraisals", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/statistics", h.handleStatistics)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/submit", h.handleSubmit)
		r.Post("/{id}/ratings", h.handleAddRating)
		r.Put("/{id}/ratings/{ratingID}", h.handleUpdateRating)
		r.Delete("/{id}/ratings/{ratingID}", h.handleDeleteRating)
		r.Post("/{id}/feedback-cards", h.handleAddFeedbackCard)
		r.Put("/{id}/feedback-cards/{cardID}", h.handleUpdateFeedbackCard)
		r.Delete("/{id}/feedback-cards/{cardID}", h.handleDeleteFeedbackCard)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("userId", payload.UserID, "user id is required")
	v.Required("userName", payload.UserName, "user name is required")
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("appraisalPeriod", payload.AppraisalPeriod, "appraisal period is required")
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to create self appraisal", reqID)
		return
	}
	api.Created(w, "self appraisal created", record, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	q := r.URL.Query()
	page := shared.ParsePagination(r, 10, 100)
	records, pageInfo, err := h.Service.List(r.Context(), appraisal.Filter{
		Status:     q.Get("status"),
		EmployeeID: q.Get("employeeId"),
		Employee:   q.Get("employee"),
		Page:       page.Page,
		Limit:      page.Limit,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list self appraisals", reqID)
		return
	}

	count := len(records)
	api.WriteJSON(w, http.StatusOK, api.Envelope{
		Success:   true,
		Count:     &count,
		Data:      map[string]any{"appraisals": records, "pagination": pageInfo},
		RequestID: reqID,
	})
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	records, _, err := h.Service.List(r.Context(), appraisal.Filter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Page:       1,
		Limit:      100,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list self appraisals", reqID)
		return
	}
	api.List(w, len(records), records, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	record, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "self appraisal updated", record, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "self appraisal deleted", nil, reqID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "self appraisal submitted", record, reqID)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Statistics(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load statistics", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleAddRating(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.RatingInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}
	if payload.Criteria == "" {
		api.Fail(w, http.StatusBadRequest, "criteria is required", reqID)
		return
	}

	record, err := h.Service.AddRating(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Created(w, "rating added", record, reqID)
}

func (h *Handler) handleUpdateRating(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.RatingPatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	record, err := h.Service.UpdateRating(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ratingID"), payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "rating updated", record, reqID)
}

func (h *Handler) handleDeleteRating(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.DeleteRating(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ratingID"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "rating deleted", record, reqID)
}

func (h *Handler) handleAddFeedbackCard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.FeedbackCardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}
	if payload.Feedback == "" {
		api.Fail(w, http.StatusBadRequest, "feedback is required", reqID)
		return
	}

	record, err := h.Service.AddFeedbackCard(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Created(w, "feedback card added", record, reqID)
}

func (h *Handler) handleUpdateFeedbackCard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload appraisal.FeedbackCardPatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	record, err := h.Service.UpdateFeedbackCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cardID"), payload)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "feedback card updated", record, reqID)
}

func (h *Handler) handleDeleteFeedbackCard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.DeleteFeedbackCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cardID"))
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "feedback card deleted", record, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, appraisal.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "self appraisal not found", reqID)
	case errors.Is(err, appraisal.ErrRatingNotFound):
		api.Fail(w, http.StatusNotFound, "rating not found", reqID)
	case errors.Is(err, appraisal.ErrFeedbackNotFound):
		api.Fail(w, http.StatusNotFound, "feedback card not found", reqID)
	case errors.Is(err, appraisal.ErrInvalidWeightage),
		errors.Is(err, appraisal.ErrInvalidRating),
		errors.Is(err, appraisal.ErrAlreadySubmitted),
		errors.Is(err, appraisal.ErrNoRatings):
		api.Fail(w, http.StatusBadRequest, err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation failed", reqID)
	}
}
