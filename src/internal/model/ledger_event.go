package model

import "time"

// Event is anything the messaging gateway can publish keyed by id.
type Event interface {
	GetId() string
}

// LedgerEvent is emitted on every money-moving transition. Consumers use it
// for notifications and audit trails; publish failures never roll back
// ledger state.
type LedgerEvent struct {
	EventID    string    `json:"event_id"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *LedgerEvent) GetId() string {
	return e.EventID
}
