package response

import (
	"time"

	"kyc-service/internal/data/entity"
)

type AuditorResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	AuditorID     string     `json:"auditor_id"`
	AccessScope   string     `json:"access_scope"`
	LastAuditDate *time.Time `json:"last_audit_date,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func AuditorToResponse(auditor *entity.Auditor) AuditorResponse {
	return AuditorResponse{
		ID:            auditor.ID.String(),
		UserID:        auditor.UserID.String(),
		AuditorID:     auditor.AuditorID,
		AccessScope:   auditor.AccessScope,
		LastAuditDate: auditor.LastAuditDate,
		Remarks:       auditor.Remarks,
		CreatedAt:     auditor.CreatedAt,
	}
}
