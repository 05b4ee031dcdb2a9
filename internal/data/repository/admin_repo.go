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

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Admin, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error)
	CountAll(ctx context.Context) (int64, error)
	TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error
}

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, user_id, employee_id, department, verified_count, last_activity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.UserID,
		admin.EmployeeID,
		admin.Department,
		admin.VerifiedCount,
		admin.LastActivity,
		admin.CreatedAt,
	)

	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "employee id already in use", err)
	}
	if err != nil {
		r.log.Error("Failed to create admin",
			zap.Error(err),
			zap.String("employee_id", admin.EmployeeID),
		)
		return fmt.Errorf("create admin %s: %w", admin.EmployeeID, err)
	}

	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	query := `
		SELECT id, user_id, employee_id, department, verified_count, last_activity, created_at
		FROM admins
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *adminRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Admin, error) {
	query := `
		SELECT id, user_id, employee_id, department, verified_count, last_activity, created_at
		FROM admins
		WHERE user_id = $1
	`

	return r.scanOne(ctx, query, userID)
}

func (r *adminRepository) scanOne(ctx context.Context, query string, arg any) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.UserID,
		&admin.EmployeeID,
		&admin.Department,
		&admin.VerifiedCount,
		&admin.LastActivity,
		&admin.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin", zap.Error(err))
		return nil, fmt.Errorf("find admin: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error) {
	query := `
		SELECT id, user_id, employee_id, department, verified_count, last_activity, created_at
		FROM admins
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all admins",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all admins limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var admins []*entity.Admin
	for rows.Next() {
		var admin entity.Admin
		err := rows.Scan(
			&admin.ID,
			&admin.UserID,
			&admin.EmployeeID,
			&admin.Department,
			&admin.VerifiedCount,
			&admin.LastActivity,
			&admin.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan admin row", zap.Error(err))
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, &admin)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate admins rows: %w", err)
	}

	return admins, nil
}

func (r *adminRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM admins`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting admins", zap.Error(err))
		return 0, fmt.Errorf("count all admins: %w", err)
	}

	return count, nil
}

// TouchActivity records an administrative action outside the
// verification workflow; decisions update last_activity in their own
// transaction instead.
func (r *adminRepository) TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE admins SET last_activity = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to touch admin activity",
			zap.Error(err),
			zap.String("admin_id", id.String()),
		)
		return fmt.Errorf("touch admin %s activity: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("admin not found")
	}

	return nil
}
