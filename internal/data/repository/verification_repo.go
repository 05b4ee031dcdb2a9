package repository

import (
	"context"
	"fmt"
	"time"

	"kyc-service/internal/data/entity"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VerificationRepository interface {
	CreatePending(ctx context.Context, v *entity.Verification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Verification, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Verification, error)
	FindLatestByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.Verification, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Verification, error)
	CountAll(ctx context.Context) (int64, error)

	// Decisions. Both run in a single transaction: the conditional
	// status UPDATE plus the admin and customer side effects. Zero rows
	// on the conditional UPDATE means the record is not pending; the
	// losing writer of a concurrent race lands here too.
	Approve(ctx context.Context, verificationID, adminID uuid.UUID, remarks *string, decidedAt time.Time) error
	Reject(ctx context.Context, verificationID, adminID uuid.UUID, remarks string, decidedAt time.Time) error
}

type verificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationRepository(db database.PgxIface, log *zap.Logger) VerificationRepository {
	return &verificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification")),
	}
}

// CreatePending inserts a new pending record. The partial unique index
// on (customer_id) WHERE status='pending' serializes concurrent
// submissions; the loser gets ConflictError.
func (r *verificationRepository) CreatePending(ctx context.Context, v *entity.Verification) error {
	query := `
		INSERT INTO verifications (id, customer_id, admin_id, status, decided_at, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		v.ID,
		v.CustomerID,
		v.AdminID,
		v.Status,
		v.DecidedAt,
		v.Remarks,
		v.CreatedAt,
	)

	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "a pending verification request already exists", err)
	}
	if err != nil {
		r.log.Error("Failed to create verification",
			zap.Error(err),
			zap.String("customer_id", v.CustomerID.String()),
		)
		return fmt.Errorf("create verification for customer %s: %w", v.CustomerID.String(), err)
	}

	return nil
}

func (r *verificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Verification, error) {
	query := `
		SELECT id, customer_id, admin_id, status, decided_at, remarks, created_at
		FROM verifications
		WHERE id = $1
	`

	var v entity.Verification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.CustomerID,
		&v.AdminID,
		&v.Status,
		&v.DecidedAt,
		&v.Remarks,
		&v.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification by ID",
			zap.Error(err),
			zap.String("verification_id", id.String()),
		)
		return nil, fmt.Errorf("find verification by ID %s: %w", id.String(), err)
	}

	return &v, nil
}

func (r *verificationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Verification, error) {
	query := `
		SELECT id, customer_id, admin_id, status, decided_at, remarks, created_at
		FROM verifications
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find verifications by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find verifications by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// FindLatestByCustomerID returns the customer's most recent record;
// its status is the customer's effective verification state.
func (r *verificationRepository) FindLatestByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.Verification, error) {
	query := `
		SELECT id, customer_id, admin_id, status, decided_at, remarks, created_at
		FROM verifications
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var v entity.Verification
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&v.ID,
		&v.CustomerID,
		&v.AdminID,
		&v.Status,
		&v.DecidedAt,
		&v.Remarks,
		&v.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest verification",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find latest verification for customer %s: %w", customerID.String(), err)
	}

	return &v, nil
}

func (r *verificationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Verification, error) {
	query := `
		SELECT id, customer_id, admin_id, status, decided_at, remarks, created_at
		FROM verifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all verifications",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all verifications limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *verificationRepository) collect(rows pgx.Rows) ([]*entity.Verification, error) {
	var verifications []*entity.Verification
	for rows.Next() {
		var v entity.Verification
		err := rows.Scan(
			&v.ID,
			&v.CustomerID,
			&v.AdminID,
			&v.Status,
			&v.DecidedAt,
			&v.Remarks,
			&v.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan verification row", zap.Error(err))
			return nil, fmt.Errorf("scan verification row: %w", err)
		}
		verifications = append(verifications, &v)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate verifications rows: %w", err)
	}

	return verifications, nil
}

func (r *verificationRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM verifications`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting verifications", zap.Error(err))
		return 0, fmt.Errorf("count all verifications: %w", err)
	}

	return count, nil
}

func (r *verificationRepository) Approve(ctx context.Context, verificationID, adminID uuid.UUID, remarks *string, decidedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional transition out of pending. The WHERE clause is the
	// compare-and-swap: of two concurrent approvals exactly one matches.
	var customerID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE verifications
		SET status = $2, admin_id = $3, decided_at = $4, remarks = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING customer_id
	`, verificationID, entity.VerificationStatusApproved, adminID, decidedAt, remarks).Scan(&customerID)

	if err == pgx.ErrNoRows {
		return r.notPending(ctx, verificationID)
	}
	if err != nil {
		r.log.Error("Failed to approve verification",
			zap.Error(err),
			zap.String("verification_id", verificationID.String()),
		)
		return fmt.Errorf("approve verification %s: %w", verificationID.String(), err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE admins SET verified_count = verified_count + 1, last_activity = $2 WHERE id = $1
	`, adminID, decidedAt)
	if err != nil {
		return fmt.Errorf("increment admin %s verified count: %w", adminID.String(), err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE customers SET is_verified = TRUE, account_status = $2, updated_at = $3 WHERE id = $1
	`, customerID, entity.AccountStatusActive, decidedAt)
	if err != nil {
		return fmt.Errorf("mark customer %s verified: %w", customerID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approve transaction: %w", err)
	}

	r.log.Info("Verification approved",
		zap.String("verification_id", verificationID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("customer_id", customerID.String()),
	)

	return nil
}

func (r *verificationRepository) Reject(ctx context.Context, verificationID, adminID uuid.UUID, remarks string, decidedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reject transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE verifications
		SET status = $2, admin_id = $3, decided_at = $4, remarks = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING customer_id
	`, verificationID, entity.VerificationStatusRejected, adminID, decidedAt, remarks).Scan(&customerID)

	if err == pgx.ErrNoRows {
		return r.notPending(ctx, verificationID)
	}
	if err != nil {
		r.log.Error("Failed to reject verification",
			zap.Error(err),
			zap.String("verification_id", verificationID.String()),
		)
		return fmt.Errorf("reject verification %s: %w", verificationID.String(), err)
	}

	// Rejection is still an administrative action; it only skips the
	// verified_count increment.
	_, err = tx.Exec(ctx, `
		UPDATE admins SET last_activity = $2 WHERE id = $1
	`, adminID, decidedAt)
	if err != nil {
		return fmt.Errorf("touch admin %s activity: %w", adminID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reject transaction: %w", err)
	}

	r.log.Info("Verification rejected",
		zap.String("verification_id", verificationID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}

// notPending distinguishes a missing record from a terminal one after a
// conditional UPDATE matched nothing.
func (r *verificationRepository) notPending(ctx context.Context, verificationID uuid.UUID) error {
	existing, err := r.FindByID(ctx, verificationID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound("verification not found")
	}
	return apperrors.Newf(apperrors.CodeInvalidState, "verification is already %s", existing.Status)
}
