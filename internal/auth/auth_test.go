package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v, err := NewVerifier("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	token, err := v.Sign("user-1", "u@example.com", "Usman", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := v.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "u@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	v, _ := NewVerifier("test-secret")
	other, _ := NewVerifier("other-secret")

	expired, _ := v.Sign("user-1", "", "", -time.Minute)
	foreign, _ := other.Sign("user-1", "", "", time.Hour)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"expired":      expired,
		"wrong secret": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := v.Validate(token); err == nil {
				t.Error("Validate() accepted a bad token")
			}
		})
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier(""); err == nil {
		t.Error("NewVerifier accepted an empty secret")
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v, _ := NewVerifier("test-secret")
	token, _ := v.Sign("user-7", "u@example.com", "Usman", time.Hour)

	router := gin.New()
	router.GET("/protected", Middleware(v), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nonsense", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
