package response

import (
	"errors"
	"net/http"

	"github.com/mindcore/mindcore/pkg/hub"
	"github.com/mindcore/mindcore/pkg/mind"
	"github.com/mindcore/mindcore/pkg/snapshot"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id"`
}

// Common error codes
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"
)

// HTTPStatusFromError maps service errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	var notFound *snapshot.NotFoundError
	var unavailable *snapshot.UnavailableError

	switch {
	case errors.Is(err, hub.ErrStateNotFound), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, hub.ErrStateExists):
		return http.StatusConflict
	case errors.Is(err, mind.ErrInvalidInput),
		errors.Is(err, mind.ErrInvalidConfig),
		errors.Is(err, mind.ErrBadMagic),
		errors.Is(err, mind.ErrBadVersion),
		errors.Is(err, mind.ErrTruncated):
		return http.StatusBadRequest
	case errors.Is(err, mind.ErrConfigMismatch):
		return http.StatusConflict
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCodeFromStatus returns an error code for the given HTTP status.
func ErrorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeBadRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	case http.StatusGatewayTimeout:
		return ErrCodeGatewayTimeout
	default:
		return ErrCodeInternalServer
	}
}

// HandleError maps a service error to status and code and writes it.
func HandleError(w http.ResponseWriter, err error, requestID string) {
	status := HTTPStatusFromError(err)
	Error(w, status, ErrorCodeFromStatus(status), err.Error(), requestID)
}
