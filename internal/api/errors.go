package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error to its HTTP status and code. Constraint
// violations are checked before relationship writes so an assignment
// naming an unknown user is a 409, not a 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, database.ErrConstraintViolation):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, database.ErrTransient):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.Is(err, database.ErrRelationshipWrite):
		return http.StatusInternalServerError, "ASSIGNMENT_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// abortWithError writes err as a JSON error response. Server-side failures
// are logged and their details withheld from the client.
func abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		message = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest reports a body that could not be decoded
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Code:    "VALIDATION_ERROR",
		Message: "invalid request body: " + err.Error(),
	}})
}
