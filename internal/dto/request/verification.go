package request

// ApproveVerificationRequest carries optional decision remarks.
type ApproveVerificationRequest struct {
	Remarks string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

// RejectVerificationRequest requires a rejection reason.
type RejectVerificationRequest struct {
	Remarks string `json:"remarks" validate:"required,max=1000"`
}
