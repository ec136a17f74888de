package errors

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Error codes carried in the response envelope so clients do not have to
// parse message text.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenInvalid       = "TOKEN_INVALID"

	CodeForbidden = "FORBIDDEN"

	CodeInvalidInput  = "INVALID_INPUT"
	CodeNoValidFields = "NO_VALID_FIELDS"

	CodeNotFound       = "NOT_FOUND"
	CodeAlreadyExists  = "ALREADY_EXISTS"
	CodeDeadlinePassed = "DEADLINE_PASSED"
	CodeNotOpen        = "NOT_OPEN"

	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Envelope is the uniform response wrapper for every API endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK sends a success envelope.
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error envelope.
func Fail(c *gin.Context, status int, code, message string, errs ...string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
		Code:    code,
	})
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, code, message string) {
	if message == "" {
		message = "Authentication required"
	}
	if code == "" {
		code = CodeUnauthorized
	}
	Fail(c, http.StatusUnauthorized, code, message)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string, errs ...string) {
	if message == "" {
		message = "Access denied"
	}
	Fail(c, http.StatusForbidden, CodeForbidden, message, errs...)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Fail(c, http.StatusNotFound, CodeNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string, errs ...string) {
	if message == "" {
		message = "Invalid request"
	}
	if code == "" {
		code = CodeInvalidInput
	}
	Fail(c, http.StatusBadRequest, code, message, errs...)
}

// TooManyRequests sends a 429 response with a Retry-After hint in seconds.
func TooManyRequests(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	Fail(c, http.StatusTooManyRequests, CodeTooManyRequests, "Too many requests, please try again later")
}

// production controls whether 500 responses include error detail.
var production bool

// SetProduction toggles production behavior for 500 responses: when set,
// internal error detail is never exposed to clients.
func SetProduction(p bool) {
	production = p
}

// InternalError sends a 500 response. The detail is included only outside
// production, where it helps debugging.
func InternalError(c *gin.Context, detail string) {
	message := "Internal server error"
	if !production && detail != "" {
		Fail(c, http.StatusInternalServerError, CodeInternalError, message, detail)
		return
	}
	Fail(c, http.StatusInternalServerError, CodeInternalError, message)
}
