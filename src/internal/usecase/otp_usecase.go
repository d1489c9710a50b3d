package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/worker"
	httpError "coinvest-service/src/pkg/http-error"
	"coinvest-service/src/pkg/log"
	"coinvest-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength = 6
	otpTTL    = 5 * time.Minute
)

// TaskEnqueuer is the slice of asynq.Client this usecase needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type OtpUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Redis    redis.UniversalClient
	Tasks    TaskEnqueuer
}

func NewOtpUseCase(logger log.Log, validate *validator.Validate, redisClient redis.UniversalClient, tasks TaskEnqueuer) *OtpUseCase {
	return &OtpUseCase{
		Log:      logger,
		Validate: validate,
		Redis:    redisClient,
		Tasks:    tasks,
	}
}

// Send generates a one-time code, stores only its bcrypt hash, and hands
// delivery to the background queue. Re-sending replaces the previous code.
func (c *OtpUseCase) Send(ctx context.Context, request *model.SendOtpRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	code := utils.RandomDigits(otpLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to hash code: %v", err)
		result.Error = errObj
		c.Log.Error("otp-usecase", errObj.Message, "Send", request.Target)
		return result
	}

	key := otpKey(request.Purpose, request.Target)
	if err := c.Redis.Set(ctx, key, hash, otpTTL).Err(); err != nil {
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("failed to store code: %v", err)
		result.Error = errObj
		c.Log.Error("otp-usecase", errObj.Message, "Send", request.Target)
		return result
	}

	task, err := worker.NewOtpDeliveryTask(worker.OtpDeliveryPayload{
		Target:  request.Target,
		Channel: request.Channel,
		Code:    code,
		Purpose: request.Purpose,
	})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to build delivery task: %v", err)
		result.Error = errObj
		c.Log.Error("otp-usecase", errObj.Message, "Send", request.Target)
		return result
	}

	if _, err := c.Tasks.EnqueueContext(ctx, task); err != nil {
		// the stored code is useless without delivery; expire it now
		if delErr := c.Redis.Del(ctx, key).Err(); delErr != nil {
			c.Log.Error("otp-usecase", fmt.Sprintf("failed to drop undeliverable code: %v", delErr), "Send", request.Target)
		}
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("failed to enqueue delivery: %v", err)
		result.Error = errObj
		c.Log.Error("otp-usecase", errObj.Message, "Send", request.Target)
		return result
	}

	c.Log.Info("otp-usecase", "otp queued for delivery", "Send", request.Channel)
	result.Data = &model.SendOtpResponse{
		Target:    request.Target,
		Channel:   request.Channel,
		ExpiresIn: int(otpTTL.Seconds()),
	}
	return result
}

// Verify checks a submitted code against the stored hash and consumes it
// on success. A wrong code leaves the stored code in place until it expires.
func (c *OtpUseCase) Verify(ctx context.Context, request *model.VerifyOtpRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	key := otpKey(request.Purpose, request.Target)
	hash, err := c.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		errObj := httpError.NewBadRequest()
		errObj.Message = "code expired or not requested"
		result.Error = errObj
		return result
	}
	if err != nil {
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("failed to load code: %v", err)
		result.Error = errObj
		c.Log.Error("otp-usecase", errObj.Message, "Verify", request.Target)
		return result
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(request.Code)); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "invalid code"
		result.Error = errObj
		return result
	}

	if err := c.Redis.Del(ctx, key).Err(); err != nil {
		c.Log.Error("otp-usecase", fmt.Sprintf("failed to consume code: %v", err), "Verify", request.Target)
	}

	c.Log.Info("otp-usecase", "otp verified", "Verify", request.Purpose)
	result.Data = map[string]interface{}{
		"target":   request.Target,
		"purpose":  request.Purpose,
		"verified": true,
	}
	return result
}

func otpKey(purpose, target string) string {
	return fmt.Sprintf("OTP:%s:%s", purpose, target)
}
