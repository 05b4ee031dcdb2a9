// internal/wire/wire.go
package wire

import (
	"net/http"

	"kyc-service/internal/adaptor"
	"kyc-service/internal/data/repository"
	"kyc-service/internal/policy"
	"kyc-service/internal/usecase"
	"kyc-service/pkg/middleware"
	"kyc-service/pkg/storage"
	"kyc-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes.
func Wiring(repo *repository.Repository, config *utils.Config, docs storage.DocumentStore, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)
	resolver := policy.NewResolver(repo, logger)

	service := usecase.NewService(repo, config, tokens, docs, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, resolver, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	resolver *policy.Resolver,
	tokens *utils.TokenManager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, resolver, tokens, logger)
	wireCustomer(r, handler.Customer, resolver, tokens, logger)
	wireAdmin(r, handler.Admin, resolver, tokens, logger)
	wireAuditor(r, handler.Auditor, resolver, tokens, logger)
	wireVerification(r, handler.Verification, resolver, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// protected wraps a route group with token validation and actor
// resolution. Role checks live in the policy layer, not in routing.
func protected(r chi.Router, resolver *policy.Resolver, tokens *utils.TokenManager, logger *zap.Logger) chi.Router {
	return r.With(
		middleware.Auth(tokens, logger),
		middleware.Actor(resolver, logger),
	)
}
