package wire

import (
	"kyc-service/internal/adaptor"
	"kyc-service/internal/policy"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	p := protected(r, resolver, tokens, log)

	// GET /api/customers - Admins see all, customers see themselves
	p.Get("/api/customers", customerHandler.ListCustomers)

	// POST /api/customers/kyc-document - Attach a KYC document (customer)
	p.Post("/api/customers/kyc-document", customerHandler.UploadKYCDocument)

	// GET /api/customers/{id} - Customer profile detail
	p.Get("/api/customers/{id}", customerHandler.GetCustomer)

	// PUT /api/customers/{id} - Update contact fields
	p.Put("/api/customers/{id}", customerHandler.UpdateCustomer)
}
