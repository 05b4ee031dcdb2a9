package response

import (
	"time"

	"kyc-service/internal/data/entity"
)

type VerificationResponse struct {
	ID          string                    `json:"id"`
	CustomerID  string                    `json:"customer_id"`
	AdminID     *string                   `json:"admin_id,omitempty"`
	Status      entity.VerificationStatus `json:"status"`
	DecidedAt   *time.Time                `json:"decided_at,omitempty"`
	Remarks     *string                   `json:"remarks,omitempty"`
	SubmittedAt time.Time                 `json:"submitted_at"`
}

func VerificationToResponse(v *entity.Verification) VerificationResponse {
	resp := VerificationResponse{
		ID:          v.ID.String(),
		CustomerID:  v.CustomerID.String(),
		Status:      v.Status,
		DecidedAt:   v.DecidedAt,
		Remarks:     v.Remarks,
		SubmittedAt: v.CreatedAt,
	}

	if v.AdminID != nil {
		adminID := v.AdminID.String()
		resp.AdminID = &adminID
	}

	return resp
}
