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

type AuditorRepository interface {
	Create(ctx context.Context, auditor *entity.Auditor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Auditor, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Auditor, error)
	CountAll(ctx context.Context) (int64, error)
	TouchAudit(ctx context.Context, id uuid.UUID, at time.Time) error
}

type auditorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditorRepository(db database.PgxIface, log *zap.Logger) AuditorRepository {
	return &auditorRepository{
		db:  db,
		log: log.With(zap.String("repository", "auditor")),
	}
}

func (r *auditorRepository) Create(ctx context.Context, auditor *entity.Auditor) error {
	query := `
		INSERT INTO auditors (id, user_id, auditor_id, access_scope, last_audit_date, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		auditor.ID,
		auditor.UserID,
		auditor.AuditorID,
		auditor.AccessScope,
		auditor.LastAuditDate,
		auditor.Remarks,
		auditor.CreatedAt,
	)

	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, "auditor id already in use", err)
	}
	if err != nil {
		r.log.Error("Failed to create auditor",
			zap.Error(err),
			zap.String("auditor_id", auditor.AuditorID),
		)
		return fmt.Errorf("create auditor %s: %w", auditor.AuditorID, err)
	}

	return nil
}

func (r *auditorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditor, error) {
	query := `
		SELECT id, user_id, auditor_id, access_scope, last_audit_date, remarks, created_at
		FROM auditors
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *auditorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Auditor, error) {
	query := `
		SELECT id, user_id, auditor_id, access_scope, last_audit_date, remarks, created_at
		FROM auditors
		WHERE user_id = $1
	`

	return r.scanOne(ctx, query, userID)
}

func (r *auditorRepository) scanOne(ctx context.Context, query string, arg any) (*entity.Auditor, error) {
	var auditor entity.Auditor
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&auditor.ID,
		&auditor.UserID,
		&auditor.AuditorID,
		&auditor.AccessScope,
		&auditor.LastAuditDate,
		&auditor.Remarks,
		&auditor.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditor", zap.Error(err))
		return nil, fmt.Errorf("find auditor: %w", err)
	}

	return &auditor, nil
}

func (r *auditorRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Auditor, error) {
	query := `
		SELECT id, user_id, auditor_id, access_scope, last_audit_date, remarks, created_at
		FROM auditors
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all auditors",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all auditors limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var auditors []*entity.Auditor
	for rows.Next() {
		var auditor entity.Auditor
		err := rows.Scan(
			&auditor.ID,
			&auditor.UserID,
			&auditor.AuditorID,
			&auditor.AccessScope,
			&auditor.LastAuditDate,
			&auditor.Remarks,
			&auditor.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan auditor row", zap.Error(err))
			return nil, fmt.Errorf("scan auditor row: %w", err)
		}
		auditors = append(auditors, &auditor)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate auditors rows: %w", err)
	}

	return auditors, nil
}

func (r *auditorRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM auditors`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting auditors", zap.Error(err))
		return 0, fmt.Errorf("count all auditors: %w", err)
	}

	return count, nil
}

func (r *auditorRepository) TouchAudit(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE auditors SET last_audit_date = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to touch auditor audit date",
			zap.Error(err),
			zap.String("auditor_id", id.String()),
		)
		return fmt.Errorf("touch auditor %s audit date: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("auditor not found")
	}

	return nil
}
