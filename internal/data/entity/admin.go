package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin is owned 1:1 by a user with role=admin. VerifiedCount is
// monotonic and incremented only by successful approvals; LastActivity
// is touched on every administrative action.
type Admin struct {
	BaseSimple
	UserID        uuid.UUID `db:"user_id"`
	EmployeeID    string    `db:"employee_id"`
	Department    string    `db:"department"`
	VerifiedCount int64     `db:"verified_count"`
	LastActivity  time.Time `db:"last_activity"`
}
