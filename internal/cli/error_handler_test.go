package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("reviewer")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add feedback",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to add feedback: invalid input",
		},
		{
			name:      "Validation error with field errors",
			operation: "add feedback",
			err:       apperrors.NewValidationError("invalid feedback entry", ve),
			expected:  "failed to add feedback: invalid feedback entry: " + ve.GetUserFriendlyMessage(),
		},
		{
			name:      "Not found error",
			operation: "set chapter status",
			err:       apperrors.NewNotFoundError("chapter", "7"),
			expected:  "failed to set chapter status: chapter not found: 7",
		},
		{
			name:      "Database error",
			operation: "list chapters",
			err:       apperrors.NewDatabaseError("query", errors.New("disk I/O error")),
			expected:  "failed to list chapters: A database error occurred. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
		{
			name:      "Nil error",
			operation: "process",
			err:       nil,
			expected:  "failed to process: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
		})
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	cause := apperrors.NewNotFoundError("task", "task-9")

	err := eh.Handle("toggle task", cause)

	assert.True(t, apperrors.IsNotFound(err))
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Same(t, cause, appErr)
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Not found", apperrors.NewNotFoundError("chapter", "3"), "chapter not found: 3"},
		{"Invalid argument", apperrors.NewInvalidArgumentError("status", "done", "unknown status"), "invalid argument for status: unknown status"},
		{"Timeout", apperrors.NewTimeoutError("query", nil), "The operation timed out. Please try again."},
		{"Plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("title")

	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		database   bool
		exitCode   int
	}{
		{"nil", nil, false, false, false, ExitOK},
		{"validation", apperrors.NewValidationError("bad", nil), true, false, false, ExitInvalidInput},
		{"bare validation error", ve, true, false, false, ExitInvalidInput},
		{"invalid argument", apperrors.NewInvalidArgumentError("count", -1, "negative"), true, false, false, ExitInvalidInput},
		{"not found", apperrors.NewNotFoundError("chapter", "1"), false, true, false, ExitNotFound},
		{"wrapped not found", eh.Handle("get chapter", apperrors.NewNotFoundError("chapter", "1")), false, true, false, ExitNotFound},
		{"database", apperrors.NewDatabaseError("insert", errors.New("locked")), false, false, true, ExitFailure},
		{"plain", errors.New("boom"), false, false, false, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err != nil {
				assert.Equal(t, tt.validation, eh.IsValidationError(tt.err))
				assert.Equal(t, tt.notFound, eh.IsNotFoundError(tt.err))
				assert.Equal(t, tt.database, eh.IsDatabaseError(tt.err))
			}
			assert.Equal(t, tt.exitCode, eh.ExitCode(tt.err))
		})
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(apperrors.NewNotFoundError("task", "x")))
	assert.Equal(t, "INVALID_ARGUMENT", eh.GetErrorCode(apperrors.NewInvalidArgumentError("f", 1, "r")))
	assert.Equal(t, "VALIDATION_FAILED", eh.GetErrorCode(apperrors.NewValidationError("bad", nil)))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("plain")))
}

func TestErrorHandler_Message(t *testing.T) {
	eh := NewErrorHandler()

	wrapped := eh.Handle("rename chapter", apperrors.NewNotFoundError("chapter", "4"))
	assert.Equal(t, "failed to rename chapter: chapter not found: 4", eh.Message(wrapped))

	assert.Equal(t, "chapter not found: 4", eh.Message(apperrors.NewNotFoundError("chapter", "4")))
	assert.Equal(t, "unknown command \"x\"", eh.Message(errors.New("unknown command \"x\"")))
}
