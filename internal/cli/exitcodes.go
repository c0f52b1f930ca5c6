package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates a general error occurred.
	// Use for: unexpected failures and assignment writes that failed part way.
	ExitGeneralError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: project, todo or user IDs that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: seed fixture files that fail to parse or validate.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty names, malformed emails, unknown priorities or statuses.
	ExitValidation = 5

	// ExitForbidden indicates the configured policy rejected the action.
	ExitForbidden = 6

	// ExitConflict indicates a uniqueness or reference constraint was violated.
	// Use for: duplicate emails, assigning a user that doesn't exist.
	ExitConflict = 7

	// ExitTempFail indicates a transient datastore failure; retrying may succeed.
	ExitTempFail = 75
)

// ExitError carries the process exit code chosen for a failed command.
// main unwraps it and exits with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an explicit exit code
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// Usagef builds an ExitUsage error
func Usagef(format string, args ...any) *ExitError {
	return NewExitError(ExitUsage, fmt.Errorf(format, args...))
}

// Classify maps an error to its machine-readable code and exit code
func Classify(err error) (string, int) {
	var exitErr *ExitError
	switch {
	case err == nil:
		return "", ExitSuccess
	case errors.As(err, &exitErr):
		return codeName(exitErr.Code), exitErr.Code
	case errors.Is(err, models.ErrInvalidInput):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, policy.ErrForbidden):
		return "FORBIDDEN", ExitForbidden
	case errors.Is(err, database.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, database.ErrConstraintViolation):
		return "CONFLICT", ExitConflict
	case errors.Is(err, database.ErrTransient):
		return "UNAVAILABLE", ExitTempFail
	case errors.Is(err, database.ErrRelationshipWrite):
		return "ASSIGNMENT_ERROR", ExitGeneralError
	default:
		return "ERROR", ExitGeneralError
	}
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	_, code := Classify(err)
	return code
}

func codeName(code int) string {
	switch code {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitForbidden:
		return "FORBIDDEN"
	case ExitConflict:
		return "CONFLICT"
	case ExitTempFail:
		return "UNAVAILABLE"
	default:
		return "ERROR"
	}
}
