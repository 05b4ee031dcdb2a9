package wire

import (
	"kyc-service/internal/adaptor"
	"kyc-service/internal/policy"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVerification(
	r chi.Router,
	verificationHandler *adaptor.VerificationHandler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	p := protected(r, resolver, tokens, log)

	// POST /api/verifications - Submit a verification request (customer)
	p.Post("/api/verifications", verificationHandler.Submit)

	// GET /api/verifications - Admins/auditors see all, customers their own
	p.Get("/api/verifications", verificationHandler.List)

	// GET /api/verifications/{id} - Verification detail
	p.Get("/api/verifications/{id}", verificationHandler.Get)

	// POST /api/verifications/{id}/approve - Approve a pending request (admin)
	p.Post("/api/verifications/{id}/approve", verificationHandler.Approve)

	// POST /api/verifications/{id}/reject - Reject a pending request (admin)
	p.Post("/api/verifications/{id}/reject", verificationHandler.Reject)
}
