package notification

import "context"

// EmailSender and SMSSender are fire-and-forget collaborators. Failures
// surface to the caller but never touch ledger state.
type EmailSender interface {
	SendOtpEmail(ctx context.Context, email, otp, purpose string) error
}

type SMSSender interface {
	SendOtpSMS(ctx context.Context, phoneNumber, otp, purpose string) error
}
