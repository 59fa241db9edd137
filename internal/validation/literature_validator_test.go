package validation

import (
	"testing"

	"manuscript-tracker/internal/domain"
)

func TestLiteratureValidator_ValidateLiteratureItem(t *testing.T) {
	validator := NewLiteratureValidator()

	tests := []struct {
		name        string
		item        domain.LiteratureItem
		expectError bool
	}{
		{"Full reference", domain.LiteratureItem{Authors: "Ho et al.", Year: "2020", Title: "DDPM", Status: domain.ReadingRead, Priority: domain.PriorityHigh}, false},
		{"Title only", domain.LiteratureItem{Title: "Score-based models", Status: domain.ReadingNotRead, Priority: domain.PriorityLow}, false},
		{"Year only", domain.LiteratureItem{Year: "2019", Status: domain.ReadingNotRead, Priority: domain.PriorityMedium}, false},
		{"Nothing identifying", domain.LiteratureItem{Authors: "  ", Status: domain.ReadingNotRead, Priority: domain.PriorityLow}, true},
		{"Unknown status", domain.LiteratureItem{Title: "X", Status: "skimmed", Priority: domain.PriorityLow}, true},
		{"Unknown priority", domain.LiteratureItem{Title: "X", Status: domain.ReadingRead, Priority: "urgent"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLiteratureItem(tt.item)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateLiteratureItem() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}
