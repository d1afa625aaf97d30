package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"
	"beauty-orders/pkg/utils"

	"go.uber.org/zap"
)

// AuthJWT validates the bearer token, loads the user it names and stores the
// user id and current role in the request context. The role comes from the
// database, so a demotion takes effect before the token expires.
func AuthJWT(jwt *utils.JWTManager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization header. Use: Bearer <token>")
				return
			}

			ctx, status, msg := authenticate(r, token, jwt, userRepo, logger)
			if status != 0 {
				utils.ResponseJSON(w, status, false, msg, nil, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthJWT authenticates the request when a token is present and lets
// anonymous requests through untouched. A present but invalid token is still
// rejected.
func OptionalAuthJWT(jwt *utils.JWTManager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization header. Use: Bearer <token>")
				return
			}

			ctx, status, msg := authenticate(r, token, jwt, userRepo, logger)
			if status != 0 {
				utils.ResponseJSON(w, status, false, msg, nil, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin must run after AuthJWT.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// authenticate returns a non-zero status with a message when the request must
// be rejected.
func authenticate(r *http.Request, token string, jwt *utils.JWTManager, userRepo repository.UserRepository, logger *zap.Logger) (context.Context, int, string) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			return nil, http.StatusUnauthorized, "Token has expired"
		}
		logger.Warn("Invalid token", zap.Error(err), zap.String("path", r.URL.Path))
		return nil, http.StatusUnauthorized, "Invalid token"
	}

	userID, _ := claims.UserID()

	user, err := userRepo.FindByID(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to load token user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, http.StatusInternalServerError, "Internal server error"
	}
	if user == nil {
		logger.Warn("Token for unknown user", zap.String("user_id", userID.String()))
		return nil, http.StatusUnauthorized, "Invalid token"
	}
	if !user.IsActive {
		return nil, http.StatusForbidden, "Account is deactivated"
	}

	return utils.SetUserContext(r.Context(), user.ID, string(user.Role)), 0, ""
}
