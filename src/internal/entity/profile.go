package entity

import (
	"database/sql"
	"time"
)

const (
	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

const (
	IdentityTypeAadhar = "aadhar"
	IdentityTypePan    = "pan"
)

// Profile is the per-user ledger record. Created lazily on first access;
// balance is a maintained running total mutated only by approvals and
// manual adjustments.
type Profile struct {
	ID             uint64         `db:"id"`
	UserID         string         `db:"user_id"`
	CoinvestorID   string         `db:"coinvestor_id"`
	Balance        float64        `db:"balance"`
	IdentityType   sql.NullString `db:"identity_type"`
	IdentityURL    sql.NullString `db:"identity_url"`
	IdentityStatus sql.NullString `db:"identity_status"`
	PhotoURL       sql.NullString `db:"photo_url"`
	PhotoStatus    sql.NullString `db:"photo_status"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// DocumentFilter narrows the admin document review queues. Search and
// MatchUserIDs work the same way as on ReviewFilter.
type DocumentFilter struct {
	Search       string
	MatchUserIDs []string
	Page         int
	Limit        int
}

// HasIdentityProof reports whether an identity document was uploaded.
func (p *Profile) HasIdentityProof() bool {
	return p.IdentityURL.Valid && p.IdentityURL.String != ""
}

// HasPhoto reports whether a photo was uploaded.
func (p *Profile) HasPhoto() bool {
	return p.PhotoURL.Valid && p.PhotoURL.String != ""
}
