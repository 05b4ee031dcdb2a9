package request

type UpdateCustomerRequest struct {
	Address *string `json:"address,omitempty"`
	Phone   string  `json:"phone" validate:"required,max=15"`
}

// UploadKYCDocumentRequest carries an inline base64-encoded document.
type UploadKYCDocumentRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Payload  string `json:"payload" validate:"required,base64"`
}
