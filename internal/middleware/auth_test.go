package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/owakeel/golf-music-backend/pkg/token"
)

func newTestValidator(t *testing.T) *token.Service {
	t.Helper()
	return token.NewService("0123456789abcdef0123456789abcdef", "test", time.Hour)
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", GetUserID(r.Context()))
		w.Header().Set("X-Role", GetRole(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := newTestValidator(t)
	raw, err := tokens.Generate("user:abc", "admin")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	handler := Chain(protectedEcho(t), Auth(tokens))
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-User") != "user:abc" {
		t.Errorf("user id not propagated: %q", rec.Header().Get("X-User"))
	}
	if rec.Header().Get("X-Role") != "admin" {
		t.Errorf("role not propagated: %q", rec.Header().Get("X-Role"))
	}
}

func TestAuth_Rejections(t *testing.T) {
	tokens := newTestValidator(t)
	handler := Chain(protectedEcho(t), Auth(tokens))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := token.NewService("0123456789abcdef0123456789abcdef", "test", -time.Minute)
	raw, err := expired.Generate("user:abc", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	handler := Chain(protectedEcho(t), Auth(newTestValidator(t)))
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	tokens := newTestValidator(t)
	handler := Chain(protectedEcho(t), Auth(tokens), AdminOnly())

	t.Run("admin passes", func(t *testing.T) {
		raw, _ := tokens.Generate("user:abc", "admin")
		req := httptest.NewRequest(http.MethodPost, "/casts", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		raw, _ := tokens.Generate("user:abc", "user")
		req := httptest.NewRequest(http.MethodPost, "/casts", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}
