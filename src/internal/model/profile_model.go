package model

import "time"

type GetDashboardRequest struct {
	UserID        string `json:"-" validate:"required,max=100"`
	Name          string `json:"-"`
	Email         string `json:"-"`
	PhoneNumber   string `json:"-"`
	EmailVerified bool   `json:"-"`
}

type UploadDocumentRequest struct {
	UserID       string `json:"-" validate:"required,max=100"`
	FileType     string `json:"fileType" validate:"required,oneof=identityProof photo"`
	IdentityType string `json:"identityType" validate:"omitempty,oneof=aadhar pan"`
	LocalPath    string `json:"-" validate:"required"`
}

type KycDocumentStatus struct {
	Uploaded bool    `json:"uploaded"`
	Type     *string `json:"type,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type KycStatusResponse struct {
	Completed     bool              `json:"completed"`
	Verified      bool              `json:"verified"`
	IdentityProof KycDocumentStatus `json:"identityProof"`
	Photo         KycDocumentStatus `json:"photo"`
}

type UploadDocumentResponse struct {
	URL          string            `json:"url"`
	FileType     string            `json:"fileType"`
	IdentityType *string           `json:"identityType,omitempty"`
	Status       string            `json:"status"`
	RedirectURL  string            `json:"redirectUrl"`
	KycStatus    KycStatusResponse `json:"kycStatus"`
}

type InvestmentView struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	StartDate time.Time `json:"startDate"`
	DaysLeft  int       `json:"daysLeft"`
	Status    string    `json:"status"` // active | matured
}

type DashboardProfile struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	EmailVerified      string  `json:"emailVerified"`
	DocumentsVerified  string  `json:"documentsVerified"`
	TotalCoins         float64 `json:"totalCoins"`
	TotalValue         float64 `json:"totalValue"`
	CoinvestorID       string  `json:"coinvestorId"`
}

type DashboardStats struct {
	ActiveInvestments int     `json:"activeInvestments"`
	NextMaturityDays  *int    `json:"nextMaturityDays"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
}

type DashboardResponse struct {
	UserProfile DashboardProfile `json:"userProfile"`
	Investments []InvestmentView `json:"investments"`
	Stats       DashboardStats   `json:"stats"`
}
