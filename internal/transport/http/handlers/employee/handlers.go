package employeehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/employee"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employee/{employeeID}", func(r chi.Router) {
		r.Get("/goals", h.handleListGoals)
		r.Post("/goals", h.handleCreateGoal)
		r.Put("/goals/{goalID}", h.handleUpdateGoal)
		r.Delete("/goals/{goalID}", h.handleDeleteGoal)
		r.Patch("/goals/{goalID}/toggle", h.handleToggleGoal)
		r.Get("/queries", h.handleListQueries)
		r.Post("/queries", h.handleCreateQuery)
		r.Get("/feedback", h.handleListFeedback)
		r.Post("/feedback", h.handleSubmitFeedback)
		r.Post("/sync/goals", h.handleSyncGoals)
		r.Post("/sync/queries", h.handleSyncQueries)
		r.Post("/sync/feedback", h.handleSyncFeedback)
		r.Get("/dashboard", h.handleDashboard)
	})
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	goals, err := h.Service.Goals(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch goals", reqID)
		return
	}
	api.List(w, len(goals), goals, reqID)
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	goal, err := h.Service.CreateGoal(r.Context(), chi.URLParam(r, "employeeID"), payload.Text)
	if err != nil {
		if errors.Is(err, employee.ErrTextRequired) {
			api.Fail(w, http.StatusBadRequest, "goal text is required", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to create goal", reqID)
		return
	}
	api.Created(w, "goal created", goal, reqID)
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employee.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	goal, err := h.Service.UpdateGoal(r.Context(), chi.URLParam(r, "goalID"), payload)
	if err != nil {
		h.failGoal(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "goal updated", goal, reqID)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.DeleteGoal(r.Context(), chi.URLParam(r, "goalID")); err != nil {
		h.failGoal(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "goal deleted", nil, reqID)
}

func (h *Handler) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Completed *bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Completed == nil {
		api.Fail(w, http.StatusBadRequest, "completed status must be a boolean", reqID)
		return
	}

	goal, err := h.Service.ToggleGoalCompletion(r.Context(), chi.URLParam(r, "goalID"), *payload.Completed)
	if err != nil {
		h.failGoal(w, err, reqID)
		return
	}

	state := "incomplete"
	if goal.Completed {
		state = "completed"
	}
	api.SuccessMessage(w, "goal marked as "+state, goal, reqID)
}

func (h *Handler) handleListQueries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	queries, err := h.Service.Queries(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch queries", reqID)
		return
	}
	api.List(w, len(queries), queries, reqID)
}

func (h *Handler) handleCreateQuery(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		QueryText string `json:"queryText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	query, err := h.Service.CreateQuery(r.Context(), chi.URLParam(r, "employeeID"), payload.QueryText)
	if err != nil {
		if errors.Is(err, employee.ErrTextRequired) {
			api.Fail(w, http.StatusBadRequest, "query text is required", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to submit query", reqID)
		return
	}
	api.Created(w, "query submitted", query, reqID)
}

func (h *Handler) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	feedback, err := h.Service.FeedbackList(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch feedback", reqID)
		return
	}
	api.List(w, len(feedback), feedback, reqID)
}

func (h *Handler) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		FeedbackText string `json:"feedbackText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	feedback, err := h.Service.SubmitFeedback(r.Context(), chi.URLParam(r, "employeeID"), payload.FeedbackText)
	if err != nil {
		if errors.Is(err, employee.ErrTextRequired) {
			api.Fail(w, http.StatusBadRequest, "feedback text is required", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to submit feedback", reqID)
		return
	}
	api.Created(w, "feedback submitted", feedback, reqID)
}

func (h *Handler) handleSyncGoals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Goals []employee.OfflineGoal `json:"goals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Goals == nil {
		api.Fail(w, http.StatusBadRequest, "goals must be an array", reqID)
		return
	}

	result := h.Service.SyncGoals(r.Context(), chi.URLParam(r, "employeeID"), payload.Goals)
	api.SuccessMessage(w, syncMessage(result), result, reqID)
}

func (h *Handler) handleSyncQueries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Queries []employee.OfflineQuery `json:"queries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Queries == nil {
		api.Fail(w, http.StatusBadRequest, "queries must be an array", reqID)
		return
	}

	result := h.Service.SyncQueries(r.Context(), chi.URLParam(r, "employeeID"), payload.Queries)
	api.SuccessMessage(w, syncMessage(result), result, reqID)
}

func (h *Handler) handleSyncFeedback(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Feedback []employee.OfflineFeedback `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Feedback == nil {
		api.Fail(w, http.StatusBadRequest, "feedback must be an array", reqID)
		return
	}

	result := h.Service.SyncFeedback(r.Context(), chi.URLParam(r, "employeeID"), payload.Feedback)
	api.SuccessMessage(w, syncMessage(result), result, reqID)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Dashboard(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch dashboard statistics", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) failGoal(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employee.ErrGoalNotFound):
		api.Fail(w, http.StatusNotFound, "goal not found", reqID)
	case errors.Is(err, employee.ErrTextRequired):
		api.Fail(w, http.StatusBadRequest, "goal text is required", reqID)
	case errors.Is(err, employee.ErrInvalidPriority):
		api.Fail(w, http.StatusBadRequest, employee.ErrInvalidPriority.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation failed", reqID)
	}
}

func syncMessage(res employee.SyncResult) string {
	return fmt.Sprintf("sync completed: %d created, %d failed", res.Created, res.Failed)
}
