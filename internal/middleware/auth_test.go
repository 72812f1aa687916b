package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func runAuth(token string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/rentals", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	AuthMiddleware()(c)
	return c, w
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token sets identity", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"id":   float64(42),
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		c, _ := runAuth(token)
		if c.IsAborted() {
			t.Fatal("expected request to pass")
		}
		if got := c.GetUint("userId"); got != 42 {
			t.Errorf("expected userId 42, got %d", got)
		}
		if got := c.GetString("userRole"); got != "admin" {
			t.Errorf("expected role admin, got %q", got)
		}
	})

	t.Run("token without identity claims is rejected", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		c, w := runAuth(token)
		if !c.IsAborted() {
			t.Fatal("expected request to be aborted")
		}
		if w.Code != 401 {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("token with wrong claim types is rejected", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"id":   "not-a-number",
			"role": 7,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		c, w := runAuth(token)
		if !c.IsAborted() {
			t.Fatal("expected request to be aborted")
		}
		if w.Code != 401 {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		c, w := runAuth("")
		if !c.IsAborted() {
			t.Fatal("expected request to be aborted")
		}
		if w.Code != 401 {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
