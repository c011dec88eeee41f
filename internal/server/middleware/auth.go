package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/todosync/internal/server/handlers"
	"github.com/iudanet/todosync/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := handlers.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(ctx, "Missing or malformed Authorization header")
				handlers.WriteError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "missing or invalid token")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.WarnContext(ctx, "Invalid access token", slog.Any("error", err))
				handlers.WriteError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid or expired token")
				return
			}

			logger.DebugContext(ctx, "User authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, claims.UserID, claims.Email)))
		})
	}
}
