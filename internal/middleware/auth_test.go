package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/avendel/catalog-api/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": "tester",
		"exp": expiresAt.Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAdminAuth(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: testSecret}

	// Create a test handler that returns 200 OK
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	authHandler := AdminAuth(cfg)(testHandler)

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{
			name:           "valid admin token",
			authorization:  "Bearer " + signToken(t, testSecret, "admin", future),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid token without bearer prefix",
			authorization:  signToken(t, testSecret, "admin", future),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			authorization:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authorization:  "Bearer " + signToken(t, testSecret, "admin", past),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			authorization:  "Bearer " + signToken(t, "other-secret", "admin", future),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-admin role",
			authorization:  "Bearer " + signToken(t, testSecret, "user", future),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no role claim",
			authorization:  "Bearer " + signToken(t, testSecret, "", future),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "garbage token",
			authorization:  "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
