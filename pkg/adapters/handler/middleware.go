package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

type contextKey string

const userIDKey contextKey = "user_id"

type Middleware struct {
	auth ports.AuthService
}

func NewMiddleware(auth ports.AuthService) *Middleware {
	return &Middleware{auth: auth}
}

// AuthMiddleware verifies the bearer token in the Authorization header
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			writeMsg(w, http.StatusUnauthorized, "Missing Authorization Header")
			return
		}

		userID, err := m.auth.Authenticate(tokenString)
		if errors.Is(err, services.ErrTokenExpired) {
			writeMsg(w, http.StatusUnauthorized, "Token has expired")
			return
		}
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		// Token is valid, proceed
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func userIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
