package httpError

import "net/http"

// CommonError is the error shape carried through usecase results and
// rendered by the delivery layer.
type CommonError struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e CommonError) Error() string {
	return e.Message
}

func NewBadRequest() CommonError {
	return CommonError{
		Code:    http.StatusBadRequest,
		Status:  "BAD_REQUEST",
		Message: "Bad request",
	}
}

func NewNotFound() CommonError {
	return CommonError{
		Code:    http.StatusNotFound,
		Status:  "NOT_FOUND",
		Message: "Not found",
	}
}

// NewConflict covers one-shot state transitions acted on twice.
func NewConflict() CommonError {
	return CommonError{
		Code:    http.StatusConflict,
		Status:  "CONFLICT",
		Message: "Conflict",
	}
}

// NewUnprocessableEntity covers balance guards rejecting a valid request.
func NewUnprocessableEntity() CommonError {
	return CommonError{
		Code:    http.StatusUnprocessableEntity,
		Status:  "UNPROCESSABLE_ENTITY",
		Message: "Unprocessable entity",
	}
}

func NewUnauthorized() CommonError {
	return CommonError{
		Code:    http.StatusUnauthorized,
		Status:  "UNAUTHORIZED",
		Message: "Unauthorized",
	}
}

func NewForbidden() CommonError {
	return CommonError{
		Code:    http.StatusForbidden,
		Status:  "FORBIDDEN",
		Message: "Forbidden",
	}
}

func NewInternalServerError() CommonError {
	return CommonError{
		Code:    http.StatusInternalServerError,
		Status:  "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
	}
}

// NewServiceUnavailable covers unreachable collaborators (storage, mailer, broker).
func NewServiceUnavailable() CommonError {
	return CommonError{
		Code:    http.StatusServiceUnavailable,
		Status:  "SERVICE_UNAVAILABLE",
		Message: "Service unavailable",
	}
}
