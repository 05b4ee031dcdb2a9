package repository

import (
	"context"
	"fmt"

	"kyc-service/internal/data/entity"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/database"

	"go.uber.org/zap"
)

// ProvisionRepository creates a user and its role profile in one
// transaction. A role-tagged user without its profile must never be
// observable, so both inserts commit or neither does.
type ProvisionRepository interface {
	CreateCustomer(ctx context.Context, user *entity.User, profile *entity.Customer) error
	CreateAdmin(ctx context.Context, user *entity.User, profile *entity.Admin) error
	CreateAuditor(ctx context.Context, user *entity.User, profile *entity.Auditor) error
}

type provisionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProvisionRepository(db database.PgxIface, log *zap.Logger) ProvisionRepository {
	return &provisionRepository{
		db:  db,
		log: log.With(zap.String("repository", "provision")),
	}
}

const insertUserQuery = `
	INSERT INTO users (id, email, password, phone, role, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *provisionRepository) CreateCustomer(ctx context.Context, user *entity.User, profile *entity.Customer) error {
	return r.provision(ctx, user, func(ctx context.Context, exec execFn) error {
		return exec(ctx, `
			INSERT INTO customers (id, user_id, address, phone, kyc_file, is_verified,
			                       account_status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			profile.ID,
			profile.UserID,
			profile.Address,
			profile.Phone,
			profile.KYCFile,
			profile.IsVerified,
			profile.AccountStatus,
			profile.CreatedAt,
			profile.UpdatedAt,
		)
	})
}

func (r *provisionRepository) CreateAdmin(ctx context.Context, user *entity.User, profile *entity.Admin) error {
	return r.provision(ctx, user, func(ctx context.Context, exec execFn) error {
		return exec(ctx, `
			INSERT INTO admins (id, user_id, employee_id, department, verified_count, last_activity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			profile.ID,
			profile.UserID,
			profile.EmployeeID,
			profile.Department,
			profile.VerifiedCount,
			profile.LastActivity,
			profile.CreatedAt,
		)
	})
}

func (r *provisionRepository) CreateAuditor(ctx context.Context, user *entity.User, profile *entity.Auditor) error {
	return r.provision(ctx, user, func(ctx context.Context, exec execFn) error {
		return exec(ctx, `
			INSERT INTO auditors (id, user_id, auditor_id, access_scope, last_audit_date, remarks, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			profile.ID,
			profile.UserID,
			profile.AuditorID,
			profile.AccessScope,
			profile.LastAuditDate,
			profile.Remarks,
			profile.CreatedAt,
		)
	})
}

type execFn func(ctx context.Context, sql string, args ...any) error

// provision runs the user insert plus the profile insert inside one
// transaction, mapping unique violations (email, employee id, auditor
// id) to ConflictError.
func (r *provisionRepository) provision(ctx context.Context, user *entity.User, insertProfile func(context.Context, execFn) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin provision transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	exec := func(ctx context.Context, sql string, args ...any) error {
		_, err := tx.Exec(ctx, sql, args...)
		return err
	}

	err = exec(ctx, insertUserQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "email already registered", err)
	}
	if err != nil {
		r.log.Error("Failed to insert user during provisioning",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("provision user %s: %w", user.Email, err)
	}

	err = insertProfile(ctx, exec)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "profile identifier already in use", err)
	}
	if err != nil {
		r.log.Error("Failed to insert profile during provisioning",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("role", string(user.Role)),
		)
		return fmt.Errorf("provision %s profile for %s: %w", user.Role, user.Email, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit provision transaction: %w", err)
	}

	r.log.Info("User provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return nil
}
