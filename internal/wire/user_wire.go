package wire

import (
	"kyc-service/internal/adaptor"
	"kyc-service/internal/policy"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	p := protected(r, resolver, tokens, log)

	// GET /api/users/profile - Own account details (any role)
	p.Get("/api/users/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	// Authorization is enforced by the policy layer; non-admins get 403.

	// GET /api/admin/users - List all accounts
	p.Get("/api/admin/users", userHandler.GetAllUsers)

	// DELETE /api/admin/users/{id} - Soft-delete an account
	p.Delete("/api/admin/users/{id}", userHandler.DeleteUser)
}
