package response

import (
	"time"

	"kyc-service/internal/data/entity"
)

type CustomerResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	Address       *string              `json:"address,omitempty"`
	Phone         string               `json:"phone"`
	KYCFile       *string              `json:"kyc_file,omitempty"`
	IsVerified    bool                 `json:"is_verified"`
	AccountStatus entity.AccountStatus `json:"account_status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            customer.ID.String(),
		UserID:        customer.UserID.String(),
		Address:       customer.Address,
		Phone:         customer.Phone,
		KYCFile:       customer.KYCFile,
		IsVerified:    customer.IsVerified,
		AccountStatus: customer.AccountStatus,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
}
