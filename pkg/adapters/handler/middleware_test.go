package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
)

const testSecret = "testservlet"

func TestAuthMiddleware(t *testing.T) {
	auth := services.NewAuthService(nil, testSecret, time.Minute)
	mw := NewMiddleware(auth)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "No Header",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Missing Authorization Header",
		},
		{
			name:           "Wrong Scheme",
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Missing Authorization Header",
		},
		{
			name:           "Invalid Token",
			header:         "Bearer invalid",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token",
		},
		{
			name:           "Expired Token",
			header:         "Bearer " + generateTestToken(t, testSecret, 42, -time.Minute),
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token has expired",
		},
		{
			name:           "Valid Token",
			header:         "Bearer " + generateTestToken(t, testSecret, 42, 5*time.Minute),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/links", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rr := httptest.NewRecorder()
			var gotUser int64
			handler := mw.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = userIDFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
			if tt.expectedMsg != "" {
				var body map[string]string
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["msg"] != tt.expectedMsg {
					t.Errorf("msg = %q, want %q", body["msg"], tt.expectedMsg)
				}
			} else if gotUser != 42 {
				t.Errorf("user id in context = %d, want 42", gotUser)
			}
		})
	}
}

func generateTestToken(t *testing.T, secret string, userID int64, ttl time.Duration) string {
	expirationTime := time.Now().Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return tokenString
}
