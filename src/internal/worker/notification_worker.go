package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"coinvest-service/src/internal/gateway/notification"
	"coinvest-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

const TypeOtpDelivery = "notification:otp"

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// OtpDeliveryPayload is the asynq task body for outbound OTP delivery.
type OtpDeliveryPayload struct {
	Target  string `json:"target"`
	Channel string `json:"channel"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// NewOtpDeliveryTask builds the task the OTP usecase enqueues.
func NewOtpDeliveryTask(payload OtpDeliveryPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOtpDelivery, body, asynq.MaxRetry(3)), nil
}

// NotificationWorker drains OTP delivery tasks off the queue and hands them
// to the sender collaborators. Delivery runs off the ledger critical path.
type NotificationWorker struct {
	Log   log.Log
	Email notification.EmailSender
	SMS   notification.SMSSender
}

func NewNotificationWorker(logger log.Log, email notification.EmailSender, sms notification.SMSSender) *NotificationWorker {
	return &NotificationWorker{
		Log:   logger,
		Email: email,
		SMS:   sms,
	}
}

func (w *NotificationWorker) HandleOtpDelivery(ctx context.Context, task *asynq.Task) error {
	var payload OtpDeliveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", fmt.Sprintf("bad task payload: %v", err), "HandleOtpDelivery", "")
		return fmt.Errorf("unmarshal otp payload: %v: %w", err, asynq.SkipRetry)
	}

	switch payload.Channel {
	case ChannelEmail:
		if err := w.Email.SendOtpEmail(ctx, payload.Target, payload.Code, payload.Purpose); err != nil {
			w.Log.Error("notification-worker", err.Error(), "HandleOtpDelivery", payload.Target)
			return err
		}
	case ChannelSMS:
		if err := w.SMS.SendOtpSMS(ctx, payload.Target, payload.Code, payload.Purpose); err != nil {
			w.Log.Error("notification-worker", err.Error(), "HandleOtpDelivery", payload.Target)
			return err
		}
	default:
		w.Log.Error("notification-worker", "unknown channel "+payload.Channel, "HandleOtpDelivery", "")
		return fmt.Errorf("unknown channel %q: %w", payload.Channel, asynq.SkipRetry)
	}

	w.Log.Info("notification-worker", "otp delivered", "HandleOtpDelivery", payload.Channel)
	return nil
}
