package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"manuscript-tracker/internal/config"
)

const (
	defaultTitleMaxLength       = 200
	defaultDescriptionMaxLength = 500
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in characters is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// HasControlCharacters reports whether s contains newlines, tabs or other
// control characters, which would break table and markdown output.
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidOrdinal checks if a chapter ordinal is usable (zero is front matter)
func (v *Validator) IsValidOrdinal(ordinal int) bool {
	return ordinal >= 0
}

// IsValidWordCount checks if a word count is non-negative
func (v *Validator) IsValidWordCount(count int) bool {
	return count >= 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns configured maximum chapter title length or default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return defaultTitleMaxLength
}

// DescriptionMaxLength returns configured maximum length of free text fields or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}

// checkText validates a required single-line text field into ve.
func (v *Validator) checkText(ve *ValidationError, field, value string, required bool, max int) {
	trimmed := v.TrimAndValidateString(value)
	if trimmed == "" {
		if required {
			ve.AddRequiredError(field)
		}
		return
	}
	if !v.IsValidStringLength(trimmed, 1, max) {
		ve.AddInvalidLengthError(field, trimmed, 1, max)
	}
	if v.HasControlCharacters(trimmed) {
		ve.AddInvalidCharacterError(field, trimmed)
	}
}

// result returns ve as an error, or nil when it is empty.
func result(ve *ValidationError) error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}
