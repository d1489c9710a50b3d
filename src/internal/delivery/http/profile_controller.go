package http

import (
	"fmt"
	"os"
	"path/filepath"

	"coinvest-service/src/internal/delivery/http/middleware"
	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/usecase"
	httpError "coinvest-service/src/pkg/http-error"
	"coinvest-service/src/pkg/log"
	"coinvest-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileController struct {
	Log                  log.Log
	UseCase              *usecase.ProfileUseCase
	PaymentMethodUseCase *usecase.PaymentMethodUseCase
	OtpUseCase           *usecase.OtpUseCase
}

func NewProfileController(
	useCase *usecase.ProfileUseCase,
	paymentMethodUseCase *usecase.PaymentMethodUseCase,
	otpUseCase *usecase.OtpUseCase,
	logger log.Log,
) *ProfileController {
	return &ProfileController{
		Log:                  logger,
		UseCase:              useCase,
		PaymentMethodUseCase: paymentMethodUseCase,
		OtpUseCase:           otpUseCase,
	}
}

func (c *ProfileController) GetDashboard(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.GetDashboardRequest{
		UserID:        auth.Metadata.UserID,
		Name:          auth.Metadata.FullName,
		Email:         auth.Metadata.Email,
		PhoneNumber:   auth.Metadata.PhoneNumber,
		EmailVerified: auth.Metadata.EmailVerified,
	}
	result := c.UseCase.GetDashboard(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Dashboard", fiber.StatusOK, ctx)
}

func (c *ProfileController) GetKycStatus(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetKycStatus(ctx.Context(), auth.Metadata.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "KYC Status", fiber.StatusOK, ctx)
}

func (c *ProfileController) UploadDocument(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "file is required"
		return utils.ResponseError(errObj, ctx)
	}

	localPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := ctx.SaveFile(file, localPath); err != nil {
		c.Log.Error("ProfileController.UploadDocument", "Failed to persist upload", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			c.Log.Error("ProfileController.UploadDocument", fmt.Sprintf("Failed to remove temp file: %v", err), "cleanup", localPath)
		}
	}()

	request := &model.UploadDocumentRequest{
		UserID:       auth.Metadata.UserID,
		FileType:     ctx.FormValue("fileType"),
		IdentityType: ctx.FormValue("identityType"),
		LocalPath:    localPath,
	}
	result := c.UseCase.UploadDocument(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Document Uploaded", fiber.StatusOK, ctx)
}

func (c *ProfileController) SubmitPurchase(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitPurchaseRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.SubmitPurchase", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.SubmitPurchase(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Purchase Request Submitted", fiber.StatusCreated, ctx)
}

func (c *ProfileController) SubmitWithdrawal(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitWithdrawalRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.SubmitWithdrawal", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.SubmitWithdrawal(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Withdrawal Request Submitted", fiber.StatusCreated, ctx)
}

func (c *ProfileController) ListRequests(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ListRequestsRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("ProfileController.ListRequests", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.ListRequests(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Requests", fiber.StatusOK, ctx)
}

func (c *ProfileController) ListPaymentMethods(ctx *fiber.Ctx) error {
	result := c.PaymentMethodUseCase.ListActive(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Payment Methods", fiber.StatusOK, ctx)
}

func (c *ProfileController) SendOtp(ctx *fiber.Ctx) error {
	request := new(model.SendOtpRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.SendOtp", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.OtpUseCase.Send(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "OTP Sent", fiber.StatusOK, ctx)
}

func (c *ProfileController) VerifyOtp(ctx *fiber.Ctx) error {
	request := new(model.VerifyOtpRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.VerifyOtp", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.OtpUseCase.Verify(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "OTP Verified", fiber.StatusOK, ctx)
}
