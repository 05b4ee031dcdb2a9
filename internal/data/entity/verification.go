package entity

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Verification is one decision record against a customer profile. A
// customer accumulates records over resubmission cycles but holds at
// most one pending record at a time; approved and rejected records are
// terminal and kept unmodified for audit history. AdminID is nulled if
// the deciding admin account is later deleted, the record itself stays.
type Verification struct {
	BaseSimple
	CustomerID uuid.UUID          `db:"customer_id"`
	AdminID    *uuid.UUID         `db:"admin_id"`
	Status     VerificationStatus `db:"status"`
	DecidedAt  *time.Time         `db:"decided_at"`
	Remarks    *string            `db:"remarks"`
}

// Terminal reports whether the record can no longer transition.
func (v *Verification) Terminal() bool {
	return v.Status == VerificationStatusApproved || v.Status == VerificationStatusRejected
}
