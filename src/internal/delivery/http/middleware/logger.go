package middleware

import (
	"fmt"
	"time"

	"coinvest-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// NewLogger emits one access log line per request.
func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		logger := log.GetLogger()
		meta := fmt.Sprintf("status=%d duration=%s ip=%s", ctx.Response().StatusCode(), time.Since(start), ctx.IP())
		logger.Info("http", fmt.Sprintf("%s %s", ctx.Method(), ctx.Path()), "access", meta)
		return err
	}
}
