package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"leadstyle/internal/model"
	"leadstyle/internal/scoring"
	"leadstyle/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// invalidInputBody is the 400 body for a rejected answer set
type invalidInputBody struct {
	Error string `json:"error"`
	*scoring.InvalidInputError
}

// writeServiceError maps service and scoring errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var invalid *scoring.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, invalidInputBody{Error: err.Error(), InvalidInputError: invalid})
	case errors.Is(err, scoring.ErrInvalidInput),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrCompareCount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRespondentNotFound),
		errors.Is(err, service.ErrResultNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAssessmentCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("Error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
