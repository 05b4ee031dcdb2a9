package response

import (
	"time"

	"kyc-service/internal/data/entity"
)

type AdminResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	EmployeeID    string    `json:"employee_id"`
	Department    string    `json:"department"`
	VerifiedCount int64     `json:"verified_count"`
	LastActivity  time.Time `json:"last_activity"`
	CreatedAt     time.Time `json:"created_at"`
}

func AdminToResponse(admin *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:            admin.ID.String(),
		UserID:        admin.UserID.String(),
		EmployeeID:    admin.EmployeeID,
		Department:    admin.Department,
		VerifiedCount: admin.VerifiedCount,
		LastActivity:  admin.LastActivity,
		CreatedAt:     admin.CreatedAt,
	}
}
