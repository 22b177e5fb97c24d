package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

// SessionService holds the active access token and mirrors it into a
// durable TokenStore. Store failures are logged and never returned: the
// in-memory session always follows the last Set or Clear.
type SessionService struct {
	store ports.TokenStore

	mu    sync.RWMutex
	token string
}

func NewSessionService(store ports.TokenStore) *SessionService {
	return &SessionService{store: store}
}

// Restore loads the persisted token, if any, and makes it active.
func (s *SessionService) Restore(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("session: load token: %v", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return token, true
}

func (s *SessionService) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *SessionService) Set(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Save(ctx, token); err != nil {
		log.Printf("session: save token: %v", err)
	}
}

func (s *SessionService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		log.Printf("session: delete token: %v", err)
	}
}

// TokenClaims reads subject and expiry from a JWT without verifying it.
// Opaque tokens yield zero values.
func TokenClaims(token string) (subject string, expires time.Time) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return claims.Subject, expires
}
