package middleware

import (
	"net/http"
	"os"

	"ecommerce-be/internal/auth"
	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/messages"
	"ecommerce-be/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware puts the token's caller into the request context.
// Requests without a token pass through anonymously; a token that fails
// validation is rejected with 401.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseAccessToken(tokenStr, os.Getenv("JWT_SECRET"))
		if err != nil {
			logger.FromCtx(r.Context()).Warn("rejected access token", zap.Error(err))
			utils.WriteJSONError(w, messages.Unauthorized, http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
