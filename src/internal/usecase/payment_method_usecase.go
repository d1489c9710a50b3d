package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/model/converter"
	"coinvest-service/src/internal/repository"
	httpError "coinvest-service/src/pkg/http-error"
	"coinvest-service/src/pkg/log"
	"coinvest-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	activeMethodsCacheKey = "payment-methods:active"
	activeMethodsCacheTTL = 5 * time.Minute
)

type PaymentMethodUseCase struct {
	Log                     log.Log
	Validate                *validator.Validate
	PaymentMethodRepository repository.PaymentMethodStore
	Redis                   redis.UniversalClient
}

func NewPaymentMethodUseCase(
	logger log.Log,
	validate *validator.Validate,
	paymentMethodRepository repository.PaymentMethodStore,
	redisClient redis.UniversalClient,
) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{
		Log:                     logger,
		Validate:                validate,
		PaymentMethodRepository: paymentMethodRepository,
		Redis:                   redisClient,
	}
}

// Create registers a new deposit instruction. A qr method must carry its
// qrCodeUrl; the other types must not.
func (c *PaymentMethodUseCase) Create(ctx context.Context, request *model.CreatePaymentMethodRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := validateQRCodeURL(request.Type, request.QRCodeURL); err != nil {
		result.Error = err
		return result
	}

	details, err := json.Marshal(request.Details)
	if err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "details must be a JSON object"
		result.Error = errObj
		return result
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	method := &entity.PaymentMethod{
		ID:       uuid.NewString(),
		Type:     request.Type,
		Title:    request.Title,
		Details:  details,
		IsActive: isActive,
	}
	if request.QRCodeURL != "" {
		method.QRCodeURL = sql.NullString{String: request.QRCodeURL, Valid: true}
	}

	if err := c.PaymentMethodRepository.Insert(ctx, method); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to create payment method: %v", err)
		result.Error = errObj
		c.Log.Error("payment-method-usecase", errObj.Message, "Create", request.Title)
		return result
	}

	c.invalidateCache(ctx)
	c.Log.Info("payment-method-usecase", "payment method created", "Create", method.ID)

	stored, err := c.PaymentMethodRepository.FindByID(ctx, method.ID)
	if err != nil {
		// write succeeded; fall back to the in-memory view
		result.Data = converter.PaymentMethodToResponse(method)
		return result
	}
	result.Data = converter.PaymentMethodToResponse(stored)
	return result
}

// Update patches a method. The qrCodeUrl invariant is checked against the
// merged state, not just the incoming fields.
func (c *PaymentMethodUseCase) Update(ctx context.Context, request *model.UpdatePaymentMethodRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	method, err := c.PaymentMethodRepository.FindByID(ctx, request.ID)
	if err != nil {
		result.Error = c.mapStoreError(err, "Update", request.ID)
		return result
	}

	if request.Type != "" {
		method.Type = request.Type
	}
	if request.Title != "" {
		method.Title = request.Title
	}
	if request.Details != nil {
		details, err := json.Marshal(request.Details)
		if err != nil {
			errObj := httpError.NewBadRequest()
			errObj.Message = "details must be a JSON object"
			result.Error = errObj
			return result
		}
		method.Details = details
	}
	if request.QRCodeURL != nil {
		if *request.QRCodeURL == "" {
			method.QRCodeURL = sql.NullString{}
		} else {
			method.QRCodeURL = sql.NullString{String: *request.QRCodeURL, Valid: true}
		}
	}
	if request.IsActive != nil {
		method.IsActive = *request.IsActive
	}

	if err := validateQRCodeURL(method.Type, method.QRCodeURL.String); err != nil {
		result.Error = err
		return result
	}

	if err := c.PaymentMethodRepository.Update(ctx, method); err != nil {
		result.Error = c.mapStoreError(err, "Update", request.ID)
		return result
	}

	c.invalidateCache(ctx)
	c.Log.Info("payment-method-usecase", "payment method updated", "Update", method.ID)

	result.Data = converter.PaymentMethodToResponse(method)
	return result
}

func (c *PaymentMethodUseCase) Delete(ctx context.Context, request *model.DeletePaymentMethodRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.PaymentMethodRepository.Delete(ctx, request.ID); err != nil {
		result.Error = c.mapStoreError(err, "Delete", request.ID)
		return result
	}

	c.invalidateCache(ctx)
	c.Log.Info("payment-method-usecase", "payment method deleted", "Delete", request.ID)

	result.Data = map[string]interface{}{"id": request.ID}
	return result
}

// ListActive serves the user-facing purchase screen. Backed by a short
// redis cache; a cache miss or redis outage falls through to the store.
func (c *PaymentMethodUseCase) ListActive(ctx context.Context) utils.Result {
	var result utils.Result

	if c.Redis != nil {
		cached, err := c.Redis.Get(ctx, activeMethodsCacheKey).Result()
		if err == nil {
			var responses []model.PaymentMethodResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				result.Data = responses
				return result
			}
		} else if !errors.Is(err, redis.Nil) {
			c.Log.Error("payment-method-usecase", fmt.Sprintf("cache read failed: %v", err), "ListActive", "")
		}
	}

	methods, err := c.PaymentMethodRepository.List(ctx, true)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list payment methods: %v", err)
		result.Error = errObj
		c.Log.Error("payment-method-usecase", errObj.Message, "ListActive", "")
		return result
	}

	responses := converter.PaymentMethodsToResponses(methods)
	if c.Redis != nil {
		if encoded, err := json.Marshal(responses); err == nil {
			if err := c.Redis.Set(ctx, activeMethodsCacheKey, encoded, activeMethodsCacheTTL).Err(); err != nil {
				c.Log.Error("payment-method-usecase", fmt.Sprintf("cache write failed: %v", err), "ListActive", "")
			}
		}
	}

	result.Data = responses
	return result
}

// ListAll serves the admin management screen, inactive methods included.
func (c *PaymentMethodUseCase) ListAll(ctx context.Context) utils.Result {
	var result utils.Result

	methods, err := c.PaymentMethodRepository.List(ctx, false)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list payment methods: %v", err)
		result.Error = errObj
		c.Log.Error("payment-method-usecase", errObj.Message, "ListAll", "")
		return result
	}

	result.Data = converter.PaymentMethodsToResponses(methods)
	return result
}

func (c *PaymentMethodUseCase) invalidateCache(ctx context.Context) {
	if c.Redis == nil {
		return
	}
	if err := c.Redis.Del(ctx, activeMethodsCacheKey).Err(); err != nil {
		c.Log.Error("payment-method-usecase", fmt.Sprintf("cache invalidation failed: %v", err), "invalidateCache", "")
	}
}

func (c *PaymentMethodUseCase) mapStoreError(err error, scope, meta string) httpError.CommonError {
	if errors.Is(err, repository.ErrNotFound) {
		errObj := httpError.NewNotFound()
		errObj.Message = "payment method not found"
		return errObj
	}
	errObj := httpError.NewInternalServerError()
	errObj.Message = fmt.Sprintf("payment method store error: %v", err)
	c.Log.Error("payment-method-usecase", errObj.Message, scope, meta)
	return errObj
}

func validateQRCodeURL(methodType, qrCodeURL string) error {
	if methodType == entity.PaymentMethodTypeQR && qrCodeURL == "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "qrCodeUrl is required for qr payment methods"
		return errObj
	}
	if methodType != entity.PaymentMethodTypeQR && qrCodeURL != "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "qrCodeUrl is only allowed for qr payment methods"
		return errObj
	}
	return nil
}
