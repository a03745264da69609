package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/pkg/utils"
)

// Authenticate validates the bearer token and loads the account into the
// request context. The effective role is stored, so superusers show up as
// admin everywhere downstream.
func Authenticate(userRepo repository.UserRepository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseAccessToken(config.JWT, parts[1])
			if err != nil {
				logger.Warn("Access token rejected", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// The account is reloaded so role changes and deletions take
			// effect before the token expires.
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Warn("Token subject no longer resolves",
					zap.Error(err),
					zap.String("user_id", userID.String()),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			role := string(user.Role)
			if user.IsSuperuser {
				role = "admin"
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Username, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards admin-only routes; it assumes Authenticate ran first.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
