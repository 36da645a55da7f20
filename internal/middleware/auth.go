package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/pkg/token"
)

// TokenValidator defines the interface for bearer-token verification
type TokenValidator interface {
	Validate(raw string) (*token.Claims, error)
}

// Auth returns a middleware that validates bearer tokens and stores the
// resolved identity and role in the request context
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
				return
			}

			claims, err := validator.Validate(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Session expired. Please log in again.")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly returns a middleware that rejects callers without the admin
// role. It must run after Auth.
func AdminOnly() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r.Context()) != string(model.UserRoleAdmin) {
				writeAuthError(w, http.StatusForbidden, "Access denied: admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRole extracts the authenticated role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Response{
		Success: false,
		Message: message,
	})
}
