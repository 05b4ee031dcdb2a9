package wire

import (
	"kyc-service/internal/adaptor"
	"kyc-service/internal/policy"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	p := protected(r, resolver, tokens, log)

	// GET /api/admins - List admin profiles (admin only)
	p.Get("/api/admins", adminHandler.ListAdmins)

	// GET /api/admins/{id} - Admin profile detail (admin only)
	p.Get("/api/admins/{id}", adminHandler.GetAdmin)
}
