package validation

import (
	"strings"
	"testing"

	"manuscript-tracker/internal/domain"
)

func TestTaskValidator_ValidateDescription(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		description string
		expectError bool
		field       string
	}{
		{"Valid description", "Write the related-work section", false, ""},
		{"Empty description", "", true, "description"},
		{"Whitespace only", "   ", true, "description"},
		{"Too long", strings.Repeat("a", 501), true, "description"},
		{"Embedded newline", "first\nsecond", true, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDescription(tt.description)
			if (err != nil) != tt.expectError {
				t.Fatalf("ValidateDescription(%q) error = %v, expectError %v", tt.description, err, tt.expectError)
			}
			if err != nil {
				ve := err.(*ValidationError)
				if !containsField(ve.Fields(), tt.field) {
					t.Errorf("expected an error for field %s, got %v", tt.field, ve.Fields())
				}
			}
		})
	}
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	validator := NewTaskValidator()
	ordinal := 2
	negative := -1

	tests := []struct {
		name        string
		task        domain.TaskItem
		expectError bool
	}{
		{"Chapter task", domain.NewTaskItem(&ordinal, "", "Add figure 4"), false},
		{"Global task with phase", domain.NewTaskItem(nil, "Submission", "Bind copies"), false},
		{"Missing description", domain.NewTaskItem(nil, "", ""), true},
		{"Negative chapter", domain.NewTaskItem(&negative, "", "x"), true},
		{"Chapter task with phase", domain.NewTaskItem(&ordinal, "Submission", "x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTask(tt.task)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateTask() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		id          string
		expectError bool
	}{
		{"task-abc123", false},
		{"task-", true},
		{"fb-abc123", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := validator.ValidateTaskID(tt.id)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateTaskID(%q) error = %v, expectError %v", tt.id, err, tt.expectError)
			}
		})
	}
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
