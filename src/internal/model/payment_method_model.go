package model

import "time"

type CreatePaymentMethodRequest struct {
	Type      string                 `json:"type" validate:"required,oneof=upi bank qr"`
	Title     string                 `json:"title" validate:"required,max=100"`
	Details   map[string]interface{} `json:"details" validate:"required"`
	QRCodeURL string                 `json:"qrCodeUrl" validate:"omitempty,url"`
	IsActive  *bool                  `json:"isActive"`
}

type UpdatePaymentMethodRequest struct {
	ID        string                 `json:"-" validate:"required,uuid4"`
	Type      string                 `json:"type" validate:"omitempty,oneof=upi bank qr"`
	Title     string                 `json:"title" validate:"omitempty,max=100"`
	Details   map[string]interface{} `json:"details"`
	QRCodeURL *string                `json:"qrCodeUrl" validate:"omitempty"`
	IsActive  *bool                  `json:"isActive"`
}

type DeletePaymentMethodRequest struct {
	ID string `json:"-" validate:"required,uuid4"`
}

type PaymentMethodResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Details   map[string]interface{} `json:"details"`
	QRCodeURL *string                `json:"qrCodeUrl"`
	IsActive  bool                   `json:"isActive"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}
