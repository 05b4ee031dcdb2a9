package request

// RegisterRequest provisions a user plus the profile matching its role.
// Exactly one profile section must be present and it must match the
// role; the auth service enforces that pairing.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     string  `json:"role" validate:"required,oneof=customer admin auditor"`

	Customer *CustomerProfilePayload `json:"customer,omitempty"`
	Admin    *AdminProfilePayload    `json:"admin,omitempty"`
	Auditor  *AuditorProfilePayload  `json:"auditor,omitempty"`
}

type CustomerProfilePayload struct {
	Address *string `json:"address,omitempty"`
	Phone   string  `json:"phone" validate:"required,max=15"`
}

type AdminProfilePayload struct {
	EmployeeID string `json:"employee_id" validate:"required,max=20"`
	Department string `json:"department" validate:"required,max=50"`
}

type AuditorProfilePayload struct {
	AuditorID   string `json:"auditor_id" validate:"required,max=20"`
	AccessScope string `json:"access_scope,omitempty" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
