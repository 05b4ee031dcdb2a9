package repository

import (
	"errors"

	"kyc-service/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Customer     CustomerRepository
	Admin        AdminRepository
	Auditor      AuditorRepository
	Verification VerificationRepository
	Provision    ProvisionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Customer:     NewCustomerRepository(db, log),
		Admin:        NewAdminRepository(db, log),
		Auditor:      NewAuditorRepository(db, log),
		Verification: NewVerificationRepository(db, log),
		Provision:    NewProvisionRepository(db, log),
	}
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (duplicate email, employee id, or pending verification).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
