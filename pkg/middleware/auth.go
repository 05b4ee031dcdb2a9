package middleware

import (
	"errors"
	"net/http"
	"strings"

	"kyc-service/internal/policy"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer access token and sets the user identity on
// the request context. Refresh tokens are rejected here; they are only
// accepted by the refresh endpoint.
func Auth(tokens *utils.TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.ParseToken(parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			if claims.TokenType != utils.TokenTypeAccess {
				logger.Warn("Non-access token used on protected route",
					zap.String("token_type", claims.TokenType))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := claims.SubjectID()
			if err != nil {
				logger.Warn("Malformed subject in token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Actor resolves the authenticated user to its role actor and stores it
// on the context. Must run after Auth. Resolution failures deny the
// request; a role tag without a profile never falls through.
func Actor(resolver *policy.Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			actor, err := resolver.Resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperrors.ErrAuthorization) {
					utils.ResponseForbidden(w, "Access denied")
					return
				}
				logger.Error("Failed to resolve actor",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(policy.WithActor(r.Context(), actor)))
		})
	}
}
