package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Missing data")
		return
	}

	err := h.service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		writeMsg(w, http.StatusBadRequest, "Missing data")
	case errors.Is(err, services.ErrUserExists):
		writeMsg(w, http.StatusBadRequest, "Username exists")
	case errors.Is(err, services.ErrPasswordTooLong):
		writeMsg(w, http.StatusBadRequest, "Password too long")
	case err != nil:
		log.Printf("Register error: %v", err)
		writeError(w, "Error in register", err)
	default:
		writeMsg(w, http.StatusCreated, "User created")
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Missing data")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeMsg(w, http.StatusUnauthorized, "Bad username or password")
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		writeError(w, "Error in login", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// Test lets clients check that the backend is reachable.
func (h *AuthHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is up and running"})
}
