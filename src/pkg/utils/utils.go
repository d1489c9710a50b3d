package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	httpError "coinvest-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the envelope every usecase method returns.
type Result struct {
	Data  interface{}
	Error interface{}
}

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type apiErrorResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response writes a success envelope.
func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(apiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ResponseError maps usecase errors onto HTTP responses. Unknown error
// values fall back to a 500.
func ResponseError(err interface{}, ctx *fiber.Ctx) error {
	switch e := err.(type) {
	case httpError.CommonError:
		return ctx.Status(e.Code).JSON(apiErrorResponse{
			Success: false,
			Code:    e.Code,
			Status:  e.Status,
			Message: e.Message,
			Data:    e.Data,
		})
	case *httpError.CommonError:
		return ctx.Status(e.Code).JSON(apiErrorResponse{
			Success: false,
			Code:    e.Code,
			Status:  e.Status,
			Message: e.Message,
			Data:    e.Data,
		})
	case error:
		return ctx.Status(fiber.StatusInternalServerError).JSON(apiErrorResponse{
			Success: false,
			Code:    fiber.StatusInternalServerError,
			Message: e.Error(),
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(apiErrorResponse{
			Success: false,
			Code:    fiber.StatusInternalServerError,
			Message: fmt.Sprintf("%v", err),
		})
	}
}

// ConvertString renders any value as a JSON string for log metadata.
func ConvertString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// ConvertInt parses loosely-typed config values into int.
func ConvertInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomUppercaseID returns an n-character uppercase alphanumeric id.
func RandomUppercaseID(n int) string {
	max := big.NewInt(int64(len(idCharset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			b[i] = idCharset[0]
			continue
		}
		b[i] = idCharset[idx.Int64()]
	}
	return string(b)
}

// RandomDigits returns an n-digit numeric code, zero-padded.
func RandomDigits(n int) string {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return fmt.Sprintf("%0*d", n, 0)
	}
	return fmt.Sprintf("%0*d", n, v)
}
