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

type HTTPHandler struct {
	service ports.LinkService
}

func NewHTTPHandler(service ports.LinkService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List Links of the authenticated user
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	links, err := h.service.ListLinks(r.Context(), userID)
	if err != nil {
		log.Printf("List links error: %v", err)
		writeError(w, "A major error occurred in get_links on the server.", err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

// Create Link for the authenticated user
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	var req domain.LinkDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusUnprocessableEntity, "Missing title or url")
		return
	}

	link, err := h.service.AddLink(r.Context(), userID, req.Title, req.URL)
	if errors.Is(err, services.ErrMissingLinkFields) {
		writeMsg(w, http.StatusUnprocessableEntity, "Missing title or url")
		return
	}
	if err != nil {
		log.Printf("Add link error: %v", err)
		writeError(w, "Error in add_link", err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

func writeError(w http.ResponseWriter, msg string, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"msg": msg, "error": err.Error()})
}
