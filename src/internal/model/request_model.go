package model

import "time"

type SubmitPurchaseRequest struct {
	UserID         string  `json:"-" validate:"required,max=100"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"paymentMethod" validate:"required,oneof=qr upi bank"`
	ProofOfPayment string  `json:"proofOfPayment" validate:"omitempty,url"`
}

type SubmitWithdrawalRequest struct {
	UserID string  `json:"-" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ListRequestsRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
	Type   string `json:"type" query:"type" validate:"omitempty,oneof=purchase withdrawal"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit  int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
}

type RequestResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Amount          float64    `json:"amount"`
	PaymentMode     string     `json:"paymentMode"`
	ProofOfPayment  *string    `json:"proofOfPayment,omitempty"`
	Note            *string    `json:"note,omitempty"`
	SubmissionDate  time.Time  `json:"submissionDate"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty"`
	RejectionDate   *time.Time `json:"rejectionDate,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}
