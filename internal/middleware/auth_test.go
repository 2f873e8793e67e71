package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/internal/service"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func newTestRouter(jwtService service.JWTService, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guard := RequireAuth(jwtService)
	if optional {
		guard = OptionalAuth(jwtService)
	}
	router.GET("/protected", guard, func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})
	return router
}

func perform(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	router := newTestRouter(jwtService, false)

	token, err := jwtService.GenerateToken(42, "a@x.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not.a.token", http.StatusUnauthorized},
		{"header without token", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.authorization)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := service.NewJWTService(testSecret, -time.Minute)
	token, err := expired.GenerateToken(42, "a@x.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	router := newTestRouter(service.NewJWTService(testSecret, time.Hour), false)
	w := perform(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for expired token", w.Code)
	}
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(jwtService), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok || userID != 42 {
			t.Errorf("CurrentUserID() = %d, %v; want 42, true", userID, ok)
		}
		if email := c.GetString(ContextEmail); email != "a@x.com" {
			t.Errorf("email in context = %q", email)
		}
		c.Status(http.StatusOK)
	})

	token, err := jwtService.GenerateToken(42, "a@x.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if w := perform(router, "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	router := newTestRouter(jwtService, true)

	// No token: request passes, no identity.
	w := perform(router, "")
	if w.Code != http.StatusOK {
		t.Errorf("status without token = %d, want 200", w.Code)
	}

	// Garbage token: still passes anonymously rather than failing.
	w = perform(router, "Bearer garbage")
	if w.Code != http.StatusOK {
		t.Errorf("status with bad token = %d, want 200", w.Code)
	}

	// Valid token: identity attached.
	token, err := jwtService.GenerateToken(7, "b@x.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	w = perform(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"authenticated":true`) || !strings.Contains(body, `"user_id":7`) {
		t.Errorf("body = %s, want identity for user 7", body)
	}
}
