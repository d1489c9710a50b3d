package route

import (
	"coinvest-service/src/internal/delivery/http"
	"coinvest-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App               *fiber.App
	ProfileController *http.ProfileController
	AdminController   *http.AdminController
	AuthMiddleware    fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
	c.SetupAdminRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)

	c.App.Get("/coins/v1/dashboard", c.ProfileController.GetDashboard)
	c.App.Get("/coins/v1/kyc/status", c.ProfileController.GetKycStatus)
	c.App.Post("/coins/v1/kyc/documents", c.ProfileController.UploadDocument)
	c.App.Post("/coins/v1/requests/purchase", c.ProfileController.SubmitPurchase)
	c.App.Post("/coins/v1/requests/withdrawal", c.ProfileController.SubmitWithdrawal)
	c.App.Get("/coins/v1/requests", c.ProfileController.ListRequests)
	c.App.Get("/coins/v1/payment-methods", c.ProfileController.ListPaymentMethods)
	c.App.Post("/coins/v1/otp/send", c.ProfileController.SendOtp)
	c.App.Post("/coins/v1/otp/verify", c.ProfileController.VerifyOtp)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin/v1", middleware.RequireAdmin())

	admin.Get("/users", c.AdminController.ListUsers)
	admin.Patch("/users/:userId/status", c.AdminController.UpdateUserStatus)
	admin.Post("/users/:userId/deposit", c.AdminController.ManualDeposit)
	admin.Post("/users/:userId/withdraw", c.AdminController.ManualWithdraw)

	admin.Get("/documents/pending", c.AdminController.ListPendingDocuments)
	admin.Get("/documents/verified", c.AdminController.ListVerifiedDocuments)
	admin.Post("/documents/:userId/verify", c.AdminController.VerifyDocuments)
	admin.Post("/documents/:userId/reject", c.AdminController.RejectDocuments)

	admin.Get("/requests/buy", c.AdminController.ListBuyRequests)
	admin.Get("/requests/withdraw", c.AdminController.ListWithdrawRequests)
	admin.Post("/requests/:requestId/approve", c.AdminController.ApproveRequest)
	admin.Post("/requests/:requestId/reject", c.AdminController.RejectRequest)

	admin.Get("/payment-methods", c.AdminController.ListPaymentMethods)
	admin.Post("/payment-methods", c.AdminController.CreatePaymentMethod)
	admin.Patch("/payment-methods/:methodId", c.AdminController.UpdatePaymentMethod)
	admin.Delete("/payment-methods/:methodId", c.AdminController.DeletePaymentMethod)
}
