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

var smsTemplates = map[string]string{
	"phone-verification": "Your verification code is: %s. Valid for 5 minutes.",
	"sign-in":            "Your login code is: %s. Valid for 5 minutes.",
	"password-reset":     "Your password reset code is: %s. Valid for 5 minutes.",
}

// TwilioSender delivers OTP texts through the twilio messages API.
type TwilioSender struct {
	client      *http.Client
	apiBase     string
	accountSid  string
	authToken   string
	fromNumber  string
	countryCode string
	log         log.Log
}

func NewTwilioSender(v *viper.Viper, logger log.Log) *TwilioSender {
	apiBase := v.GetString("sms.twilio.api_base")
	if apiBase == "" {
		apiBase = "https://api.twilio.com/2010-04-01"
	}
	countryCode := v.GetString("sms.twilio.default_country_code")
	if countryCode == "" {
		countryCode = "+91"
	}
	return &TwilioSender{
		client:      &http.Client{Timeout: 15 * time.Second},
		apiBase:     apiBase,
		accountSid:  v.GetString("sms.twilio.account_sid"),
		authToken:   v.GetString("sms.twilio.auth_token"),
		fromNumber:  v.GetString("sms.twilio.phone_number"),
		countryCode: countryCode,
		log:         logger,
	}
}

func (s *TwilioSender) SendOtpSMS(ctx context.Context, phoneNumber, otp, purpose string) error {
	template, ok := smsTemplates[purpose]
	if !ok {
		template = "Your code is: %s. Valid for 5 minutes."
	}

	to := phoneNumber
	if !strings.HasPrefix(to, "+") {
		to = s.countryCode + to
	}

	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", to)
	form.Set("Body", fmt.Sprintf(template, otp))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.apiBase, s.accountSid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSid, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("gateway/notification", err.Error(), "SendOtpSMS", to)
		return fmt.Errorf("failed to send OTP sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.log.Error("gateway/notification", fmt.Sprintf("twilio returned %s", resp.Status), "SendOtpSMS", to)
		return fmt.Errorf("failed to send OTP sms: status %d", resp.StatusCode)
	}

	return nil
}
