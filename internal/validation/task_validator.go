package validation

import (
	"strings"

	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/idgen"
)

// TaskValidator provides validation for TaskItem operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateDescription validates a task description
func (tv *TaskValidator) ValidateDescription(description string) error {
	ve := NewValidationError()
	tv.validator.checkText(ve, "description", description, true, tv.validator.DescriptionMaxLength())
	return result(ve)
}

// ValidateTask validates a domain.TaskItem before it is stored
func (tv *TaskValidator) ValidateTask(task domain.TaskItem) error {
	ve := NewValidationError()

	tv.validator.checkText(ve, "description", task.Description, true, tv.validator.DescriptionMaxLength())
	tv.validator.checkText(ve, "phase", task.Phase, false, tv.validator.TitleMaxLength())
	if task.ChapterOrdinal != nil && !tv.validator.IsValidOrdinal(*task.ChapterOrdinal) {
		ve.AddInvalidRangeError("chapter", *task.ChapterOrdinal, "must be zero or greater")
	}
	if task.ChapterOrdinal != nil && strings.TrimSpace(task.Phase) != "" {
		ve.AddInvalidValueError("phase", task.Phase, "only global tasks have a phase")
	}

	return result(ve)
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !strings.HasPrefix(id, idgen.TaskPrefix) || len(id) == len(idgen.TaskPrefix) {
		ve := NewValidationError()
		ve.AddInvalidFormatError("task_id", id, idgen.TaskPrefix+"<id>")
		return ve
	}
	return nil
}
