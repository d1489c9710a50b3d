package http

import (
	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/usecase"
	"coinvest-service/src/pkg/log"
	"coinvest-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Log                  log.Log
	UseCase              *usecase.AdminUseCase
	PaymentMethodUseCase *usecase.PaymentMethodUseCase
}

func NewAdminController(
	useCase *usecase.AdminUseCase,
	paymentMethodUseCase *usecase.PaymentMethodUseCase,
	logger log.Log,
) *AdminController {
	return &AdminController{
		Log:                  logger,
		UseCase:              useCase,
		PaymentMethodUseCase: paymentMethodUseCase,
	}
}

func (c *AdminController) ApproveRequest(ctx *fiber.Ctx) error {
	request := &model.ApproveRequestModel{
		RequestID: ctx.Params("requestId"),
	}
	result := c.UseCase.ApproveRequest(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Request Approved", fiber.StatusOK, ctx)
}

func (c *AdminController) RejectRequest(ctx *fiber.Ctx) error {
	request := new(model.RejectRequestModel)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.RejectRequest", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.RequestID = ctx.Params("requestId")

	result := c.UseCase.RejectRequest(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Request Rejected", fiber.StatusOK, ctx)
}

func (c *AdminController) ManualDeposit(ctx *fiber.Ctx) error {
	request := new(model.ManualAdjustmentRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.ManualDeposit", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = ctx.Params("userId")

	result := c.UseCase.ManualDeposit(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Manual Deposit Applied", fiber.StatusOK, ctx)
}

func (c *AdminController) ManualWithdraw(ctx *fiber.Ctx) error {
	request := new(model.ManualAdjustmentRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.ManualWithdraw", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = ctx.Params("userId")

	result := c.UseCase.ManualWithdraw(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Manual Withdrawal Applied", fiber.StatusOK, ctx)
}

func (c *AdminController) VerifyDocuments(ctx *fiber.Ctx) error {
	request := &model.DocumentDecisionRequest{
		UserID: ctx.Params("userId"),
	}
	result := c.UseCase.VerifyDocuments(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Documents Verified", fiber.StatusOK, ctx)
}

func (c *AdminController) RejectDocuments(ctx *fiber.Ctx) error {
	request := new(model.DocumentDecisionRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.RejectDocuments", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = ctx.Params("userId")

	result := c.UseCase.RejectDocuments(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Documents Rejected", fiber.StatusOK, ctx)
}

func (c *AdminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	request := new(model.UpdateUserStatusRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.UpdateUserStatus", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = ctx.Params("userId")

	result := c.UseCase.UpdateUserStatus(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "User Status Updated", fiber.StatusOK, ctx)
}

func (c *AdminController) ListUsers(ctx *fiber.Ctx) error {
	request := new(model.ListUsersRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("AdminController.ListUsers", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListUsers(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Users", fiber.StatusOK, ctx)
}

func (c *AdminController) ListPendingDocuments(ctx *fiber.Ctx) error {
	request := new(model.ListDocumentsRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("AdminController.ListPendingDocuments", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListPendingDocuments(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Pending Documents", fiber.StatusOK, ctx)
}

func (c *AdminController) ListVerifiedDocuments(ctx *fiber.Ctx) error {
	request := new(model.ListDocumentsRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("AdminController.ListVerifiedDocuments", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListVerifiedDocuments(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Verified Documents", fiber.StatusOK, ctx)
}

func (c *AdminController) ListBuyRequests(ctx *fiber.Ctx) error {
	request := new(model.ListReviewRequestsModel)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("AdminController.ListBuyRequests", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListBuyRequests(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Buy Requests", fiber.StatusOK, ctx)
}

func (c *AdminController) ListWithdrawRequests(ctx *fiber.Ctx) error {
	request := new(model.ListReviewRequestsModel)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("AdminController.ListWithdrawRequests", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListWithdrawRequests(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Withdraw Requests", fiber.StatusOK, ctx)
}

func (c *AdminController) CreatePaymentMethod(ctx *fiber.Ctx) error {
	request := new(model.CreatePaymentMethodRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.CreatePaymentMethod", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.PaymentMethodUseCase.Create(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Payment Method Created", fiber.StatusCreated, ctx)
}

func (c *AdminController) UpdatePaymentMethod(ctx *fiber.Ctx) error {
	request := new(model.UpdatePaymentMethodRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.UpdatePaymentMethod", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.ID = ctx.Params("methodId")

	result := c.PaymentMethodUseCase.Update(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Payment Method Updated", fiber.StatusOK, ctx)
}

func (c *AdminController) DeletePaymentMethod(ctx *fiber.Ctx) error {
	request := &model.DeletePaymentMethodRequest{
		ID: ctx.Params("methodId"),
	}
	result := c.PaymentMethodUseCase.Delete(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Payment Method Deleted", fiber.StatusOK, ctx)
}

func (c *AdminController) ListPaymentMethods(ctx *fiber.Ctx) error {
	result := c.PaymentMethodUseCase.ListAll(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Payment Methods", fiber.StatusOK, ctx)
}
