package wire

import (
	"kyc-service/internal/adaptor"
	"kyc-service/internal/policy"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuditor(
	r chi.Router,
	auditorHandler *adaptor.AuditorHandler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	p := protected(r, resolver, tokens, log)

	// GET /api/auditors - Admins see all, auditors see themselves
	p.Get("/api/auditors", auditorHandler.ListAuditors)

	// GET /api/auditors/{id} - Auditor profile detail
	p.Get("/api/auditors/{id}", auditorHandler.GetAuditor)
}
