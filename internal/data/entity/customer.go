package entity

import (
	"github.com/google/uuid"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Customer is owned 1:1 by a user with role=customer. IsVerified is a
// cached projection of the latest verification record, written only by
// the verification workflow in the same transaction as the decision.
type Customer struct {
	BaseNoDelete
	UserID        uuid.UUID     `db:"user_id"`
	Address       *string       `db:"address"`
	Phone         string        `db:"phone"`
	KYCFile       *string       `db:"kyc_file"`
	IsVerified    bool          `db:"is_verified"`
	AccountStatus AccountStatus `db:"account_status"`
}

// HasKYCDocument reports whether a document reference was uploaded.
// A verification request cannot be submitted without one.
func (c *Customer) HasKYCDocument() bool {
	return c.KYCFile != nil && *c.KYCFile != ""
}
