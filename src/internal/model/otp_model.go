package model

type SendOtpRequest struct {
	Target  string `json:"target" validate:"required,max=100"`
	Channel string `json:"channel" validate:"required,oneof=email sms"`
	Purpose string `json:"purpose" validate:"required,oneof=email-verification phone-verification sign-in password-reset"`
}

type VerifyOtpRequest struct {
	Target  string `json:"target" validate:"required,max=100"`
	Purpose string `json:"purpose" validate:"required,oneof=email-verification phone-verification sign-in password-reset"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
}

type SendOtpResponse struct {
	Target    string `json:"target"`
	Channel   string `json:"channel"`
	ExpiresIn int    `json:"expiresIn"`
}
