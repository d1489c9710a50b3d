package identity

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the external identity record. Owned by the auth service; this
// service only reads it and flips the moderation status.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phoneNumber"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListFilter struct {
	Search        string
	Status        string
	EmailVerified bool
	Page          int
	Limit         int
}

// Provider is the identity-provider admin surface consumed by this service.
type Provider interface {
	ListUsers(ctx context.Context, filter ListFilter) ([]User, int, error)
	GetUsers(ctx context.Context, userIDs []string) ([]User, error)
	UpdateStatus(ctx context.Context, userID, status string) error
}
