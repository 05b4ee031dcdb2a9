package usecase

import (
	"kyc-service/internal/data/repository"
	"kyc-service/pkg/storage"
	"kyc-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Customer     CustomerService
	Admin        AdminService
	Auditor      AuditorService
	Verification VerificationService
}

func NewService(repo *repository.Repository, config *utils.Config, tokens *utils.TokenManager, docs storage.DocumentStore, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, tokens, log),
		User:         NewUserService(repo.User, log),
		Customer:     NewCustomerService(repo, docs, log),
		Admin:        NewAdminService(repo.Admin, log),
		Auditor:      NewAuditorService(repo.Auditor, log),
		Verification: NewVerificationService(repo, log),
	}
}
