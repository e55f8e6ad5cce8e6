package auth_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"taskflow/internal/api/middlewares"
	"taskflow/internal/model/auth_model"
	"taskflow/internal/services/auth_services"
)

type AuthHandler struct {
	Service *auth_services.AuthService
	Limiter *middlewares.RateLimiter
}

func NewAuthHandler(s *auth_services.AuthService, rl *middlewares.RateLimiter) *AuthHandler {
	return &AuthHandler{Service: s, Limiter: rl}
}

func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.Handle("/api/auth/register", h.Limiter.Middleware(http.HandlerFunc(h.register))).Methods("POST")
	r.Handle("/api/auth/login", h.Limiter.Middleware(http.HandlerFunc(h.login))).Methods("POST")
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	token, u, err := h.Service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth_services.ErrEmailAndPasswordRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth_services.ErrEmailTaken):
			writeError(w, http.StatusConflict, "User already exists")
		default:
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	writeSession(w, token, u)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	token, u, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth_services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeSession(w, token, u)
}

func writeSession(w http.ResponseWriter, token string, u *auth_model.User) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"user":  map[string]string{"id": u.ID, "email": u.Email, "avatar": u.Avatar},
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
