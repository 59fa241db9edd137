package validation

import (
	"testing"

	"manuscript-tracker/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsNonEmptyString(tt.input)
			if result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		min      int
		max      int
		expected bool
	}{
		{"Empty string, min 1", "", 1, 10, false},
		{"Too long", "very long string", 1, 5, false},
		{"Exactly max", "hello", 1, 5, true},
		{"Counts characters not bytes", "Ünïcödé", 1, 7, true},
		{"With leading/trailing spaces", "  hello  ", 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidStringLength(tt.input, tt.min, tt.max)
			if result != tt.expected {
				t.Errorf("IsValidStringLength(%q, %d, %d) = %v, expected %v", tt.input, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_HasControlCharacters(t *testing.T) {
	validator := NewValidator()

	if validator.HasControlCharacters("Literature Review (draft 2)") {
		t.Error("plain text should not report control characters")
	}
	if !validator.HasControlCharacters("line one\nline two") {
		t.Error("newline should be reported as a control character")
	}
}

func TestValidator_OrdinalAndWordCount(t *testing.T) {
	validator := NewValidator()

	if !validator.IsValidOrdinal(0) {
		t.Error("ordinal 0 (front matter) should be valid")
	}
	if validator.IsValidOrdinal(-1) {
		t.Error("negative ordinal should be invalid")
	}
	if !validator.IsValidWordCount(0) || validator.IsValidWordCount(-5) {
		t.Error("word count must accept zero and reject negatives")
	}
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 10
	cfg.Validation.DescriptionMaxLength = 20

	validator := NewValidatorWithConfig(cfg)
	if validator.TitleMaxLength() != 10 || validator.DescriptionMaxLength() != 20 {
		t.Errorf("limits = %d/%d, expected 10/20", validator.TitleMaxLength(), validator.DescriptionMaxLength())
	}

	defaults := NewValidator()
	if defaults.TitleMaxLength() != defaultTitleMaxLength {
		t.Errorf("default title limit = %d", defaults.TitleMaxLength())
	}
}

func TestValidator_TrimAndValidateString(t *testing.T) {
	validator := NewValidator()
	if got := validator.TrimAndValidateString("  Methods \t"); got != "Methods" {
		t.Errorf("TrimAndValidateString() = %q, expected %q", got, "Methods")
	}
}
