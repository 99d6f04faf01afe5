package resignationhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/auth"
	"pms/internal/domain/resignation"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Service *resignation.Service
}

func NewHandler(service *resignation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employee-resignation", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Post("/login", h.handleLogin)
		r.Post("/bulk-import", h.handleBulkImport)
		r.Get("/stats", h.handleStats)
		r.Get("/names", h.handleNames)
		r.Get("/employee-ids", h.handleEmployeeIDs)
		r.Get("/latest-employee-id", h.handleLatestEmployeeID)
		r.Get("/employee/{employeeID}", h.handleGetByEmployeeID)
		r.Get("/by-email/{email}", h.handleGetByEmail)
		r.Get("/profile/{employeeID}", h.handleGetByEmployeeID)
		r.Post("/change-password", h.handleChangePassword)
		r.Post("/validate", h.handleValidate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

type recordPayload struct {
	FullName          string `json:"fullName"`
	BirthDate         string `json:"birthDate"`
	Email             string `json:"email"`
	WorkEmail         string `json:"workEmail"`
	Phone             string `json:"phone"`
	EmergencyContact  string `json:"emergencyContact"`
	HireDate          string `json:"hireDate"`
	Department        string `json:"department"`
	ReportingManager  string `json:"reportingManager"`
	Address           string `json:"address"`
	CurrentAddress    string `json:"currentAddress"`
	Pincode           string `json:"pincode"`
	State             string `json:"state"`
	City              string `json:"city"`
	PanNo             string `json:"panNo"`
	Password          string `json:"password"`
	Status            string `json:"status"`
	ResignationDate   string `json:"resignationDate"`
	LastWorkingDay    string `json:"lastWorkingDay"`
	ResignationReason string `json:"resignationReason"`
}

func (p recordPayload) toCreateInput(v *shared.Validator) resignation.CreateInput {
	in := resignation.CreateInput{
		FullName:          p.FullName,
		Email:             p.Email,
		WorkEmail:         p.WorkEmail,
		Phone:             p.Phone,
		EmergencyContact:  p.EmergencyContact,
		Department:        p.Department,
		ReportingManager:  p.ReportingManager,
		Address:           p.Address,
		CurrentAddress:    p.CurrentAddress,
		Pincode:           p.Pincode,
		State:             p.State,
		City:              p.City,
		PanNo:             p.PanNo,
		Password:          p.Password,
		Status:            p.Status,
		ResignationReason: p.ResignationReason,
	}

	v.Required("fullName", p.FullName, "full name is required")
	v.Required("email", p.Email, "email is required")
	if p.Email != "" && !auth.ValidEmail(p.Email) {
		v.Add("email", "must be a valid email address")
	}
	v.Required("workEmail", p.WorkEmail, "work email is required")
	if p.WorkEmail != "" && !auth.ValidEmail(p.WorkEmail) {
		v.Add("workEmail", "must be a valid email address")
	}
	v.Required("phone", p.Phone, "phone is required")
	v.Required("emergencyContact", p.EmergencyContact, "emergency contact is required")
	v.Required("department", p.Department, "department is required")
	v.Required("reportingManager", p.ReportingManager, "reporting manager is required")
	v.Required("address", p.Address, "address is required")
	v.Required("currentAddress", p.CurrentAddress, "current address is required")
	v.Required("pincode", p.Pincode, "pincode is required")
	v.Required("state", p.State, "state is required")
	v.Required("city", p.City, "city is required")
	v.Required("panNo", p.PanNo, "pan number is required")
	if len(p.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	v.Enum("status", p.Status, resignation.Statuses, "must be one of Pending, Processed, Rejected")

	if hireDate, ok := v.Date("hireDate", p.HireDate); ok {
		in.HireDate = hireDate
	}
	in.BirthDate = optionalDate(p.BirthDate)
	in.ResignationDate = optionalDate(p.ResignationDate)
	in.LastWorkingDay = optionalDate(p.LastWorkingDay)
	return in
}

func optionalDate(raw string) *time.Time {
	parsed, err := shared.ParseDate(raw)
	if err != nil || parsed.IsZero() {
		return nil
	}
	return &parsed
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	input := payload.toCreateInput(v)
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.failMutation(w, err, reqID)
		return
	}
	api.Created(w, "resignation record created", record, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	q := r.URL.Query()
	records, err := h.Service.List(r.Context(), resignation.Filter{
		Status:     q.Get("status"),
		Department: q.Get("department"),
		FullName:   q.Get("fullName"),
		Search:     q.Get("search"),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to list records", reqID)
		return
	}
	api.List(w, len(records), records, reqID)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email      string `json:"email"`
		WorkEmail  string `json:"workEmail"`
		EmployeeID string `json:"employeeId"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}
	if payload.Email == "" && payload.WorkEmail == "" && payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "email, work email or employee id is required", reqID)
		return
	}
	if payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "password is required", reqID)
		return
	}

	result, err := h.Service.Login(r.Context(), resignation.LoginInput{
		Email:      payload.Email,
		WorkEmail:  payload.WorkEmail,
		EmployeeID: payload.EmployeeID,
		Password:   payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, resignation.ErrAccountLocked):
			api.Fail(w, http.StatusForbidden, "account locked due to too many failed attempts, try again later", reqID)
		case errors.Is(err, resignation.ErrInvalidCredentials):
			api.Fail(w, http.StatusUnauthorized, "invalid credentials", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "login failed", reqID)
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    result.Token,
		"employee": result.Record,
	})
}

func (h *Handler) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payloads []recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		api.Fail(w, http.StatusBadRequest, "payload must be an array of records", reqID)
		return
	}
	if len(payloads) == 0 {
		api.Fail(w, http.StatusBadRequest, "payload must not be empty", reqID)
		return
	}

	rows := make([]resignation.CreateInput, 0, len(payloads))
	for _, p := range payloads {
		rows = append(rows, p.toCreateInput(shared.NewValidator()))
	}

	result := h.Service.BulkImport(r.Context(), rows)
	api.Created(w, "bulk import completed", result, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleNames(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	names, err := h.Service.EmployeeNames(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load employee names", reqID)
		return
	}
	api.List(w, len(names), names, reqID)
}

func (h *Handler) handleEmployeeIDs(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	ids, err := h.Service.AllEmployeeIDs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to load employee ids", reqID)
		return
	}
	api.List(w, len(ids), ids, reqID)
}

func (h *Handler) handleLatestEmployeeID(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	id, err := h.Service.LatestEmployeeID(r.Context())
	if err != nil {
		if errors.Is(err, resignation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "no records found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to load latest employee id", reqID)
		return
	}
	api.Success(w, map[string]string{"employeeId": id}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleGetByEmployeeID(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.GetByEmployeeID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleGetByEmail(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.Service.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		FullName          *string `json:"fullName"`
		BirthDate         *string `json:"birthDate"`
		Email             *string `json:"email"`
		WorkEmail         *string `json:"workEmail"`
		Phone             *string `json:"phone"`
		EmergencyContact  *string `json:"emergencyContact"`
		HireDate          *string `json:"hireDate"`
		Department        *string `json:"department"`
		ReportingManager  *string `json:"reportingManager"`
		Address           *string `json:"address"`
		CurrentAddress    *string `json:"currentAddress"`
		Pincode           *string `json:"pincode"`
		State             *string `json:"state"`
		City              *string `json:"city"`
		PanNo             *string `json:"panNo"`
		Status            *string `json:"status"`
		ResignationDate   *string `json:"resignationDate"`
		LastWorkingDay    *string `json:"lastWorkingDay"`
		ResignationReason *string `json:"resignationReason"`
		IsActive          *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	patch := resignation.UpdateInput{
		FullName:          payload.FullName,
		Email:             payload.Email,
		WorkEmail:         payload.WorkEmail,
		Phone:             payload.Phone,
		EmergencyContact:  payload.EmergencyContact,
		Department:        payload.Department,
		ReportingManager:  payload.ReportingManager,
		Address:           payload.Address,
		CurrentAddress:    payload.CurrentAddress,
		Pincode:           payload.Pincode,
		State:             payload.State,
		City:              payload.City,
		PanNo:             payload.PanNo,
		Status:            payload.Status,
		ResignationReason: payload.ResignationReason,
		IsActive:          payload.IsActive,
	}
	if payload.Status != nil {
		v.Enum("status", *payload.Status, resignation.Statuses, "must be one of Pending, Processed, Rejected")
	}
	if payload.BirthDate != nil {
		patch.BirthDate = optionalDate(*payload.BirthDate)
	}
	if payload.HireDate != nil {
		if hireDate, ok := v.Date("hireDate", *payload.HireDate); ok {
			patch.HireDate = &hireDate
		}
	}
	if payload.ResignationDate != nil {
		patch.ResignationDate = optionalDate(*payload.ResignationDate)
	}
	if payload.LastWorkingDay != nil {
		patch.LastWorkingDay = optionalDate(*payload.LastWorkingDay)
	}
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.failMutation(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "resignation record updated", record, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.failLookup(w, err, reqID)
		return
	}
	api.SuccessMessage(w, "resignation record deleted", nil, reqID)
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID      string `json:"employeeId"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("currentPassword", payload.CurrentPassword, "current password is required")
	if len(payload.NewPassword) < 6 {
		v.Add("newPassword", "password must be at least 6 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	err := h.Service.ChangePassword(r.Context(), payload.EmployeeID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, resignation.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "employee not found", reqID)
		case errors.Is(err, resignation.ErrInvalidCredentials):
			api.Fail(w, http.StatusUnauthorized, "current password is incorrect", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "failed to change password", reqID)
		}
		return
	}
	api.SuccessMessage(w, "password changed", nil, reqID)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	result, err := h.Service.ValidateEmployee(r.Context(), payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "validation failed", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) failLookup(w http.ResponseWriter, err error, reqID string) {
	if errors.Is(err, resignation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "resignation record not found", reqID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "operation failed", reqID)
}

func (h *Handler) failMutation(w http.ResponseWriter, err error, reqID string) {
	var conflict *resignation.ConflictError
	switch {
	case errors.As(err, &conflict):
		api.Fail(w, http.StatusBadRequest, conflict.Error(), reqID)
	case errors.Is(err, resignation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "resignation record not found", reqID)
	case errors.Is(err, resignation.ErrEmployeeIDExhaust):
		api.Fail(w, http.StatusInternalServerError, "could not allocate a unique employee id", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation failed", reqID)
	}
}
