package middleware

import (
	"strings"

	httpError "coinvest-service/src/pkg/http-error"
	"coinvest-service/src/pkg/token"
	"coinvest-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

const authClaimKey = "auth"

// VerifyBearer validates the Authorization header and stashes the caller
// claim on the request context.
func VerifyBearer(v *viper.Viper) fiber.Handler {
	secret := v.GetString("jwt.secret")
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		claim, err := token.Verify(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authClaimKey, claim)
		return ctx.Next()
	}
}

// RequireAdmin gates the review and management routes. Runs after VerifyBearer.
func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claim := GetUser(ctx)
		if claim == nil || !claim.IsAdmin() {
			errObj := httpError.NewForbidden()
			errObj.Message = "admin role required"
			return utils.ResponseError(errObj, ctx)
		}
		return ctx.Next()
	}
}

// GetUser returns the claim stashed by VerifyBearer, nil on unauthenticated
// routes.
func GetUser(ctx *fiber.Ctx) *token.Claim {
	claim, _ := ctx.Locals(authClaimKey).(*token.Claim)
	return claim
}
