package validation

import (
	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/domain"
)

// LiteratureValidator validates reading list items
type LiteratureValidator struct {
	validator *Validator
}

// NewLiteratureValidator creates a new literature validator
func NewLiteratureValidator() *LiteratureValidator {
	return &LiteratureValidator{validator: NewValidator()}
}

// NewLiteratureValidatorWithConfig creates a literature validator using configured limits
func NewLiteratureValidatorWithConfig(cfg *config.Config) *LiteratureValidator {
	return &LiteratureValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateLiteratureItem requires at least one of authors, year and title.
func (lv *LiteratureValidator) ValidateLiteratureItem(item domain.LiteratureItem) error {
	ve := NewValidationError()
	max := lv.validator.DescriptionMaxLength()

	if !lv.validator.IsNonEmptyString(item.Authors) &&
		!lv.validator.IsNonEmptyString(item.Year) &&
		!lv.validator.IsNonEmptyString(item.Title) {
		ve.AddError("title", ErrorTypeRequired, "at least one of authors, year or title is required", nil)
	}
	lv.validator.checkText(ve, "authors", item.Authors, false, max)
	lv.validator.checkText(ve, "year", item.Year, false, 20)
	lv.validator.checkText(ve, "title", item.Title, false, max)

	if !item.Status.IsValid() {
		ve.AddInvalidValueError("status", item.Status, "unknown reading status")
	}
	if !item.Priority.IsValid() {
		ve.AddInvalidValueError("priority", item.Priority, "unknown priority")
	}

	return result(ve)
}
