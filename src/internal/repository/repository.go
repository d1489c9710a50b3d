package repository

import (
	"context"
	"errors"
	"time"

	"coinvest-service/src/internal/entity"
)

// Sentinel errors the usecase layer maps onto API error objects.
var (
	ErrNotFound            = errors.New("record not found")
	ErrNotPending          = errors.New("request is not pending")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicate           = errors.New("duplicate key")
)

// ProfileStore owns per-user balance and KYC document state.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	FindByCoinvestorID(ctx context.Context, coinvestorID string) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	ListByUserIDs(ctx context.Context, userIDs []string) ([]entity.Profile, error)
	UpdateIdentityProof(ctx context.Context, userID, identityType, url string) error
	UpdatePhoto(ctx context.Context, userID, url string) error
	// SetDocumentStatuses flips the status of every uploaded sub-document
	// (those with a URL) in one statement.
	SetDocumentStatuses(ctx context.Context, userID, status string) error
	ListByDocumentStatus(ctx context.Context, status string, filter entity.DocumentFilter) ([]entity.Profile, int, error)
}

// RequestStore is the append-only request log. Approve, Reject and
// InsertApproved run as single transactions against the backing store;
// the row locks inside them are the sole concurrency guard.
type RequestStore interface {
	Insert(ctx context.Context, req *entity.CoinRequest) error
	FindByID(ctx context.Context, id string) (*entity.CoinRequest, error)
	ListByUser(ctx context.Context, userID string, filter entity.RequestFilter) ([]entity.CoinRequest, error)
	ListByType(ctx context.Context, reqType string, filter entity.ReviewFilter) ([]entity.CoinRequestWithProfile, int, error)
	// Approve flips pending->approved and applies the balance delta
	// atomically. Returns the updated request and the new balance.
	Approve(ctx context.Context, requestID string, approvedAt time.Time) (*entity.CoinRequest, float64, error)
	// Reject flips pending->rejected. No balance effect.
	Reject(ctx context.Context, requestID, reason string, rejectedAt time.Time) (*entity.CoinRequest, error)
	// InsertApproved appends an already-approved request (manual admin
	// adjustment) and applies its delta in the same transaction.
	InsertApproved(ctx context.Context, req *entity.CoinRequest) (float64, error)
}

// PaymentMethodStore is plain CRUD over deposit instructions.
type PaymentMethodStore interface {
	Insert(ctx context.Context, method *entity.PaymentMethod) error
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error)
	List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error)
}
