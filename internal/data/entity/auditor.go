package entity

import (
	"time"

	"github.com/google/uuid"
)

// Auditor is owned 1:1 by a user with role=auditor.
type Auditor struct {
	BaseSimple
	UserID        uuid.UUID  `db:"user_id"`
	AuditorID     string     `db:"auditor_id"`
	AccessScope   string     `db:"access_scope"`
	LastAuditDate *time.Time `db:"last_audit_date"`
	Remarks       *string    `db:"remarks"`
}
