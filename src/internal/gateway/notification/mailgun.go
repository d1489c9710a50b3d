package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinvest-service/src/pkg/log"

	"github.com/spf13/viper"
)

var emailSubjects = map[string]string{
	"email-verification": "Verify Your Email Address",
	"sign-in":            "Your Sign In Code",
	"password-reset":     "Reset Your Password",
}

// MailgunSender delivers OTP emails through the mailgun messages API.
type MailgunSender struct {
	client    *http.Client
	apiBase   string
	domain    string
	apiKey    string
	fromName  string
	fromEmail string
	log       log.Log
}

func NewMailgunSender(v *viper.Viper, logger log.Log) *MailgunSender {
	apiBase := v.GetString("mailer.mailgun.api_base")
	if apiBase == "" {
		apiBase = "https://api.mailgun.net/v3"
	}
	return &MailgunSender{
		client:    &http.Client{Timeout: 15 * time.Second},
		apiBase:   apiBase,
		domain:    v.GetString("mailer.mailgun.domain"),
		apiKey:    v.GetString("mailer.mailgun.api_key"),
		fromName:  v.GetString("mailer.mailgun.from_name"),
		fromEmail: v.GetString("mailer.mailgun.from_email"),
		log:       logger,
	}
}

func (s *MailgunSender) SendOtpEmail(ctx context.Context, email, otp, purpose string) error {
	subject, ok := emailSubjects[purpose]
	if !ok {
		subject = emailSubjects["email-verification"]
	}

	form := url.Values{}
	form.Set("from", fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail))
	form.Set("to", email)
	form.Set("subject", subject)
	form.Set("text", fmt.Sprintf("Your code is: %s\n\nThis code will expire in 5 minutes.\n\nIf you didn't request this code, please ignore this email.", otp))

	endpoint := fmt.Sprintf("%s/%s/messages", s.apiBase, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth("api", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("gateway/notification", err.Error(), "SendOtpEmail", email)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.log.Error("gateway/notification", fmt.Sprintf("mailgun returned %s", resp.Status), "SendOtpEmail", email)
		return fmt.Errorf("failed to send OTP email: status %d", resp.StatusCode)
	}

	return nil
}
