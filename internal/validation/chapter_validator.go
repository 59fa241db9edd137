package validation

import (
	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/domain"
)

// ChapterValidator provides validation for chapter operations
type ChapterValidator struct {
	validator *Validator
}

// NewChapterValidator creates a new chapter validator
func NewChapterValidator() *ChapterValidator {
	return &ChapterValidator{validator: NewValidator()}
}

// NewChapterValidatorWithConfig creates a chapter validator using configured limits
func NewChapterValidatorWithConfig(cfg *config.Config) *ChapterValidator {
	return &ChapterValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTitle validates a chapter title
func (cv *ChapterValidator) ValidateTitle(title string) error {
	ve := NewValidationError()
	cv.validator.checkText(ve, "title", title, true, cv.validator.TitleMaxLength())
	return result(ve)
}

// ValidateOrdinal validates a chapter ordinal
func (cv *ChapterValidator) ValidateOrdinal(ordinal int) error {
	if !cv.validator.IsValidOrdinal(ordinal) {
		ve := NewValidationError()
		ve.AddInvalidRangeError("ordinal", ordinal, "must be zero or greater")
		return ve
	}
	return nil
}

// ValidateWordCount validates a word count
func (cv *ChapterValidator) ValidateWordCount(count int) error {
	if !cv.validator.IsValidWordCount(count) {
		ve := NewValidationError()
		ve.AddInvalidRangeError("word_count", count, "must be zero or greater")
		return ve
	}
	return nil
}

// ValidateTarget validates a word target
func (cv *ChapterValidator) ValidateTarget(target domain.WordTarget) error {
	if target.IsNumeric() && target.Words < 0 {
		ve := NewValidationError()
		ve.AddInvalidRangeError("target", target.Words, "must be zero or greater, or variable")
		return ve
	}
	return nil
}

// ValidateChapter validates a complete chapter before it is stored
func (cv *ChapterValidator) ValidateChapter(chapter domain.Chapter) error {
	ve := NewValidationError()

	cv.validator.checkText(ve, "title", chapter.Title, true, cv.validator.TitleMaxLength())
	if !cv.validator.IsValidOrdinal(chapter.Ordinal) {
		ve.AddInvalidRangeError("ordinal", chapter.Ordinal, "must be zero or greater")
	}
	if !cv.validator.IsValidWordCount(chapter.WordCount) {
		ve.AddInvalidRangeError("word_count", chapter.WordCount, "must be zero or greater")
	}
	if !chapter.Status.IsValid() {
		ve.AddInvalidValueError("status", chapter.Status, "unknown chapter status")
	}
	if chapter.Target.IsNumeric() && chapter.Target.Words < 0 {
		ve.AddInvalidRangeError("target", chapter.Target.Words, "must be zero or greater, or variable")
	}

	return result(ve)
}
