package middleware

import (
	"context"
	"net/http"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// RoleReader looks up the caller's current role in storage
type RoleReader interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// RequireAdmin allows the request through only if the caller's STORED role
// is admin. The role is re-read from the users table on every request, so a
// token issued before a demotion stops working immediately. Must run after
// Auth, which puts the userID into the context.
func RequireAdmin(users RoleReader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				respondUnauthorized(w, "authentication required")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Error("failed to resolve caller role",
					zap.Int("user_id", userID),
					zap.Error(err),
				)
				respondUnauthorized(w, "authentication required")
				return
			}

			if user.Role != models.RoleAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"msg":"admin access required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
