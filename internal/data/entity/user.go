package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleAuditor  UserRole = "auditor"
)

// User is the identity root. The role tag is immutable once the
// matching profile record exists; exactly one profile of the matching
// kind is provisioned per user.
type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
