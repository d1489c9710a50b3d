package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/worker"
	httpError "coinvest-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSendOtpStoresHashAndEnqueuesDelivery(t *testing.T) {
	redisClient := newFakeRedis()
	enqueuer := &fakeEnqueuer{}
	uc := NewOtpUseCase(testLogger(), testValidator(), redisClient, enqueuer)

	result := uc.Send(context.Background(), &model.SendOtpRequest{
		Target:  "asha@example.com",
		Channel: "email",
		Purpose: "email-verification",
	})
	require.Nil(t, result.Error)

	resp := result.Data.(*model.SendOtpResponse)
	assert.Equal(t, 300, resp.ExpiresIn)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, worker.TypeOtpDelivery, enqueuer.tasks[0].Type())

	var payload worker.OtpDeliveryPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, "asha@example.com", payload.Target)
	assert.Len(t, payload.Code, 6)

	// the stored value is a hash of the code, never the code itself
	stored := redisClient.data["OTP:email-verification:asha@example.com"]
	require.NotEmpty(t, stored)
	assert.NotEqual(t, payload.Code, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(payload.Code)))
}

func TestVerifyOtpConsumesCode(t *testing.T) {
	redisClient := newFakeRedis()
	enqueuer := &fakeEnqueuer{}
	uc := NewOtpUseCase(testLogger(), testValidator(), redisClient, enqueuer)

	require.Nil(t, uc.Send(context.Background(), &model.SendOtpRequest{
		Target:  "9876543210",
		Channel: "sms",
		Purpose: "phone-verification",
	}).Error)

	var payload worker.OtpDeliveryPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))

	result := uc.Verify(context.Background(), &model.VerifyOtpRequest{
		Target:  "9876543210",
		Purpose: "phone-verification",
		Code:    payload.Code,
	})
	require.Nil(t, result.Error)

	// a second verification of the same code fails
	result = uc.Verify(context.Background(), &model.VerifyOtpRequest{
		Target:  "9876543210",
		Purpose: "phone-verification",
		Code:    payload.Code,
	})
	require.NotNil(t, result.Error)
	errObj := result.Error.(httpError.CommonError)
	assert.Equal(t, 400, errObj.Code)
	assert.Contains(t, errObj.Message, "expired")
}

func TestVerifyOtpWrongCode(t *testing.T) {
	redisClient := newFakeRedis()
	enqueuer := &fakeEnqueuer{}
	uc := NewOtpUseCase(testLogger(), testValidator(), redisClient, enqueuer)

	require.Nil(t, uc.Send(context.Background(), &model.SendOtpRequest{
		Target:  "asha@example.com",
		Channel: "email",
		Purpose: "sign-in",
	}).Error)

	var payload worker.OtpDeliveryPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	wrong := "000000"
	if payload.Code == wrong {
		wrong = "000001"
	}

	result := uc.Verify(context.Background(), &model.VerifyOtpRequest{
		Target:  "asha@example.com",
		Purpose: "sign-in",
		Code:    wrong,
	})
	require.NotNil(t, result.Error)
	errObj := result.Error.(httpError.CommonError)
	assert.Equal(t, 400, errObj.Code)
	assert.Equal(t, "invalid code", errObj.Message)

	// the stored code survives a wrong guess
	assert.NotEmpty(t, redisClient.data["OTP:sign-in:asha@example.com"])
}

func TestSendOtpEnqueueFailureDropsCode(t *testing.T) {
	redisClient := newFakeRedis()
	enqueuer := &fakeEnqueuer{err: assert.AnError}
	uc := NewOtpUseCase(testLogger(), testValidator(), redisClient, enqueuer)

	result := uc.Send(context.Background(), &model.SendOtpRequest{
		Target:  "asha@example.com",
		Channel: "email",
		Purpose: "password-reset",
	})
	require.NotNil(t, result.Error)
	errObj := result.Error.(httpError.CommonError)
	assert.Equal(t, 503, errObj.Code)
	assert.Empty(t, redisClient.data)
}

func TestSendOtpRejectsUnknownChannel(t *testing.T) {
	uc := NewOtpUseCase(testLogger(), testValidator(), newFakeRedis(), &fakeEnqueuer{})

	result := uc.Send(context.Background(), &model.SendOtpRequest{
		Target:  "asha@example.com",
		Channel: "carrier-pigeon",
		Purpose: "sign-in",
	})
	require.NotNil(t, result.Error)
	assert.Equal(t, 400, result.Error.(httpError.CommonError).Code)
}
