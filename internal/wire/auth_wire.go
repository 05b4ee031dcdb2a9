package wire

import (
	"kyc-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================

	// POST /api/register - Create account with role profile
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Obtain access/refresh token pair
	r.Post("/api/login", authHandler.Login)

	// POST /api/login/refresh - Exchange refresh token for a new pair
	r.Post("/api/login/refresh", authHandler.Refresh)
}
