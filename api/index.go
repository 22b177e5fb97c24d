package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/linkshelf/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkshelf/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/linkshelf/pkg/config"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, a local sqlite file is ephemeral; use a libsql:// URL in DATABASE_URL
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	auth := services.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
	mux = handler.NewRouter(cfg, auth, services.NewLinkService(repo))
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
