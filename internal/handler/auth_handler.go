package handlers

import (
	"encoding/json"
	"net/http"

	"updatesfeed/internal/session"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login delegates to the auth subsystem. Its error message is surfaced
// verbatim; local UI state is left to the client, which keeps its form on
// failure.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Auth == nil {
		WriteError(w, "live-session mode is not enabled", http.StatusBadRequest)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Please provide email and password.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Please provide email and password.", http.StatusBadRequest)
		return
	}

	token, err := h.Auth.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err.Error(), http.StatusForbidden)
		return
	}

	WriteSuccess(w, LoginResponse{Token: token}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Auth == nil {
		WriteError(w, "live-session mode is not enabled", http.StatusBadRequest)
		return
	}

	token := session.BearerToken(r)
	if token == "" {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	if err := h.Auth.SignOut(r.Context(), token); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Signed out"}, http.StatusOK)
}
