package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the JSON shape shared by every endpoint. Count is a pointer so
// list responses can carry count=0 while single-record responses omit the field.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func SuccessMessage(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

func List(w http.ResponseWriter, count int, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: message, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: message, Details: details, RequestID: requestID})
}
