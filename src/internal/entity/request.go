package entity

import (
	"database/sql"
	"time"
)

const (
	RequestTypePurchase   = "purchase"
	RequestTypeWithdrawal = "withdrawal"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

const (
	PaymentModeQR           = "qr"
	PaymentModeUPI          = "upi"
	PaymentModeBank         = "bank"
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeCash         = "cash"
)

// CoinRequest is one row in the append-only request log. Type is immutable
// after creation; status moves pending -> approved | rejected exactly once.
type CoinRequest struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	Type            string          `db:"type"`
	Status          string          `db:"status"`
	Amount          float64         `db:"amount"`
	PaymentMode     string          `db:"payment_mode"`
	ProofOfPayment  sql.NullString  `db:"proof_of_payment"`
	Note            sql.NullString  `db:"note"`
	SubmissionDate  time.Time       `db:"submission_date"`
	ApprovalDate    sql.NullTime    `db:"approval_date"`
	RejectionDate   sql.NullTime    `db:"rejection_date"`
	RejectionReason sql.NullString  `db:"rejection_reason"`
}

// RequestFilter narrows a user's own request listing.
type RequestFilter struct {
	Type   string
	Status string
	Limit  int
}

// ReviewFilter narrows the admin review queues. Search matches the owning
// profile's coinvestor id; MatchUserIDs carries the ids whose identity
// record matched the search upstream. Both apply before pagination.
type ReviewFilter struct {
	Status       string
	Sort         string // newest | oldest
	Search       string
	MatchUserIDs []string
	Page         int
	Limit        int
}

// CoinRequestWithProfile joins a request with the owning profile for the
// admin review queues.
type CoinRequestWithProfile struct {
	CoinRequest
	CoinvestorID string `db:"coinvestor_id"`
}
