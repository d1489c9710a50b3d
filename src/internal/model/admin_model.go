package model

import "time"

type ApproveRequestModel struct {
	RequestID string `json:"-" validate:"required,uuid4"`
}

type RejectRequestModel struct {
	RequestID string `json:"-" validate:"required,uuid4"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type ManualAdjustmentRequest struct {
	UserID string  `json:"-" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Note   string  `json:"note" validate:"omitempty,max=500"`
}

type DocumentDecisionRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateUserStatusRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
	Status string `json:"status" validate:"required,oneof=active suspended pending"`
}

type ListUsersRequest struct {
	Search string `query:"search" validate:"omitempty,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=active suspended pending"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ListDocumentsRequest struct {
	Search string `query:"search" validate:"omitempty,max=100"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ListReviewRequestsModel struct {
	Search string `query:"search" validate:"omitempty,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Sort   string `query:"sort" validate:"omitempty,oneof=newest oldest"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ReviewDecisionResponse struct {
	RequestID  string  `json:"requestId"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount,omitempty"`
	NewBalance float64 `json:"newBalance,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

type ManualAdjustmentResponse struct {
	UserID     string  `json:"userId"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"newBalance"`
	Type       string  `json:"type"`
}

type DocumentDecisionResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type UserStatusResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type RecentTransaction struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	Date         time.Time  `json:"date"`
	ApprovalDate *time.Time `json:"approvalDate,omitempty"`
	PaymentMode  string     `json:"paymentMode"`
	Note         *string    `json:"note,omitempty"`
}

type UserSummary struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	CoinvestorID       string              `json:"coinvestorId"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	DocumentsStatus    string              `json:"documentsStatus"`
	RegistrationDate   time.Time           `json:"registrationDate"`
	TotalCoins         float64             `json:"totalCoins"`
	Status             string              `json:"status"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

type ListUsersResponse struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

type DocumentReviewItem struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	CoinvestorID     string             `json:"coinvestorId"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	DocumentsStatus  string             `json:"documentsStatus"`
	IdentityProof    *KycDocumentView   `json:"identityProof"`
	Photo            *KycDocumentView   `json:"photo"`
	RegistrationDate time.Time          `json:"registrationDate"`
}

type KycDocumentView struct {
	Type   *string `json:"type,omitempty"`
	URL    string  `json:"url"`
	Status string  `json:"status"`
}

type ListDocumentsResponse struct {
	Documents []DocumentReviewItem `json:"documents"`
	Total     int                  `json:"total"`
}

type ReviewRequestItem struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	CoinvestorID  string    `json:"coinvestorId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	RequestDate   time.Time `json:"requestDate"`
	ProofDocument *string   `json:"proofDocument"`
	Reason        *string   `json:"reason"`
}

type ListReviewRequestsResponse struct {
	Requests []ReviewRequestItem `json:"requests"`
	Total    int                 `json:"total"`
}
