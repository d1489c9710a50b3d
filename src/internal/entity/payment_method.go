package entity

import (
	"database/sql"
	"encoding/json"
	"time"
)

const (
	PaymentMethodTypeUPI  = "upi"
	PaymentMethodTypeBank = "bank"
	PaymentMethodTypeQR   = "qr"
)

// PaymentMethod is an admin-owned deposit instruction shown to users on the
// purchase flow. Details is an opaque JSON payload (account numbers, UPI id).
type PaymentMethod struct {
	ID        string          `db:"id"`
	Type      string          `db:"type"`
	Title     string          `db:"title"`
	Details   json.RawMessage `db:"details"`
	QRCodeURL sql.NullString  `db:"qr_code_url"`
	IsActive  bool            `db:"is_active"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
