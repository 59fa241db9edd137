package validation

import (
	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/domain"
)

// FeedbackValidator validates feedback log entries
type FeedbackValidator struct {
	validator *Validator
}

// NewFeedbackValidator creates a new feedback validator
func NewFeedbackValidator() *FeedbackValidator {
	return &FeedbackValidator{validator: NewValidator()}
}

// NewFeedbackValidatorWithConfig creates a feedback validator using configured limits
func NewFeedbackValidatorWithConfig(cfg *config.Config) *FeedbackValidator {
	return &FeedbackValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateFeedbackEntry checks that reviewer and feedback are present.
// Action is optional.
func (fv *FeedbackValidator) ValidateFeedbackEntry(entry domain.FeedbackEntry) error {
	ve := NewValidationError()
	max := fv.validator.DescriptionMaxLength()

	fv.validator.checkText(ve, "reviewer", entry.Reviewer, true, fv.validator.TitleMaxLength())
	fv.validator.checkText(ve, "feedback", entry.Feedback, true, max)
	fv.validator.checkText(ve, "action", entry.Action, false, max)

	return result(ve)
}

// ValidateAction checks the optional action text recorded when closing an entry.
func (fv *FeedbackValidator) ValidateAction(action string) error {
	ve := NewValidationError()
	fv.validator.checkText(ve, "action", action, false, fv.validator.DescriptionMaxLength())
	return result(ve)
}
