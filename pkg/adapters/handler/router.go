package handler

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wadjakorntonsri/linkshelf/pkg/config"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, auth ports.AuthService, links ports.LinkService) http.Handler {
	// Initialize Handlers
	h := NewHTTPHandler(links)
	authHandler := NewAuthHandler(auth)

	// Initialize Middleware
	mw := NewMiddleware(auth)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.HandleFunc("GET /test", authHandler.Test)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /register", authHandler.Register)

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/links", h.List)
	protectedMux.HandleFunc("POST /api/links", h.Create)

	mux.Handle("/api/", mw.AuthMiddleware(protectedMux))

	var handler http.Handler = mux
	handler = cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})(handler)
	handler = chimw.Logger(handler)
	handler = chimw.Recoverer(handler)

	return handler
}
