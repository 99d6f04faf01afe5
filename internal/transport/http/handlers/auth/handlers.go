package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/auth"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Post("/verify-otp", h.handleVerifyOTP)
		r.Post("/reset-password", h.handleResetPassword)
		r.Post("/validate-token", h.handleValidateToken)
		r.Get("/profile", h.handleProfile)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		CompanyName string `json:"companyName"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("companyName", payload.CompanyName, "company name is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Email != "" && !auth.ValidEmail(payload.Email) {
		v.Add("email", "must be a valid email address")
	}
	if len(payload.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.Register(r.Context(), payload.CompanyName, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			api.Fail(w, http.StatusBadRequest, "email already registered", reqID)
			return
		}
		if errors.Is(err, auth.ErrInvalidEmail) {
			api.Fail(w, http.StatusBadRequest, auth.ErrInvalidEmail.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "registration failed", reqID)
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   result.Token,
		"user":    result.Account,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid email or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login failed", reqID)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   result.Token,
		"user":    result.Account,
	})
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}
	if payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "email is required", reqID)
		return
	}

	result, err := h.Service.ForgotPassword(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to process request", reqID)
		return
	}

	// Identical response whether or not the account exists.
	body := map[string]any{
		"success": true,
		"message": "if the email is registered, a reset code has been sent",
	}
	if result.DebugOTP != "" {
		body["debugOTP"] = result.DebugOTP
	}
	api.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("otp", payload.OTP, "otp is required")
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.VerifyOTP(r.Context(), payload.Email, payload.OTP)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOTP) || errors.Is(err, auth.ErrAccountNotFound) {
			api.Fail(w, http.StatusBadRequest, "invalid or expired OTP", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "verification failed", reqID)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"resetToken": result.ResetToken,
		"userId":     result.UserID,
	})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		ResetToken  string `json:"resetToken"`
		NewPassword string `json:"newPassword"`
		UserID      string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("resetToken", payload.ResetToken, "reset token is required")
	v.Required("userId", payload.UserID, "user id is required")
	if len(payload.NewPassword) < 6 {
		v.Add("newPassword", "password must be at least 6 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	err := h.Service.ResetPassword(r.Context(), payload.ResetToken, payload.NewPassword, payload.UserID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountNotFound):
			api.Fail(w, http.StatusNotFound, "account not found", reqID)
		case errors.Is(err, auth.ErrInvalidResetToken):
			api.Fail(w, http.StatusUnauthorized, "invalid or expired reset token", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "password reset failed", reqID)
		}
		return
	}

	api.SuccessMessage(w, "password has been reset", nil, reqID)
}

func (h *Handler) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.WriteJSON(w, http.StatusOK, map[string]any{"valid": false, "message": "invalid request payload"})
		return
	}

	result := h.Service.ValidateToken(r.Context(), payload.Token)
	body := map[string]any{"valid": result.Valid}
	if result.Valid {
		body["user"] = result.Account
	} else {
		body["message"] = result.Message
	}
	api.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "authentication required", reqID)
		return
	}

	account, err := h.Service.Profile(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			api.Fail(w, http.StatusNotFound, "account not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to load profile", reqID)
		return
	}
	api.Success(w, account, reqID)
}
