package repository

import (
	"context"
	"fmt"

	"kyc-service/internal/data/entity"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateKYCFile(ctx context.Context, id uuid.UUID, reference string) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, address, phone, kyc_file, is_verified,
		                       account_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.UserID,
		customer.Address,
		customer.Phone,
		customer.KYCFile,
		customer.IsVerified,
		customer.AccountStatus,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "customer profile already exists", err)
	}
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("user_id", customer.UserID.String()),
		)
		return fmt.Errorf("create customer for user %s: %w", customer.UserID.String(), err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, user_id, address, phone, kyc_file, is_verified,
		       account_status, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id.String(), id)
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, user_id, address, phone, kyc_file, is_verified,
		       account_status, created_at, updated_at
		FROM customers
		WHERE user_id = $1
	`

	return r.scanOne(ctx, query, userID.String(), userID)
}

func (r *customerRepository) scanOne(ctx context.Context, query, key string, arg any) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Address,
		&customer.Phone,
		&customer.KYCFile,
		&customer.IsVerified,
		&customer.AccountStatus,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find customer %s: %w", key, err)
	}

	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, user_id, address, phone, kyc_file, is_verified,
		       account_status, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all customers limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var customer entity.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.UserID,
			&customer.Address,
			&customer.Phone,
			&customer.KYCFile,
			&customer.IsVerified,
			&customer.AccountStatus,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &customer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customers rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting customers", zap.Error(err))
		return 0, fmt.Errorf("count all customers: %w", err)
	}

	return count, nil
}

// Update writes profile fields only. Verification state (is_verified,
// account_status) is owned by the verification workflow transaction and
// is deliberately not settable here.
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET address = $2, phone = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Address,
		customer.Phone,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("customer not found")
	}

	return nil
}

func (r *customerRepository) UpdateKYCFile(ctx context.Context, id uuid.UUID, reference string) error {
	query := `UPDATE customers SET kyc_file = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, reference)
	if err != nil {
		r.log.Error("Failed to update KYC file reference",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("update customer %s kyc file: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("customer not found")
	}

	return nil
}
