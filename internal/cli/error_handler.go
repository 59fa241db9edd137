package cli

import (
	stderrors "errors"
	"fmt"

	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/validation"
)

// Exit codes returned by the mt binary
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 3
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle wraps err with the operation and a user-friendly message. The
// original error stays reachable through errors.As.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return &commandError{message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), cause: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return &commandError{message: eh.message(err), cause: err}
}

func (eh *ErrorHandler) message(err error) string {
	if err == nil {
		return "unknown error"
	}

	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Cause != nil {
			return appErr.Message + ": " + ve.GetUserFriendlyMessage()
		}
		return ve.GetUserFriendlyMessage()
	}

	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsInvalidArgument(err)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// ExitCode maps an error to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.IsValidationError(err):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// Message returns the text printed for err by the binary
func (eh *ErrorHandler) Message(err error) string {
	var ce *commandError
	if stderrors.As(err, &ce) {
		return ce.message
	}
	return eh.message(err)
}

// commandError carries a display message and the underlying cause
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.cause }
