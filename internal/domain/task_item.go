package domain

import "time"

// TaskItem is a checklist line. It belongs to a chapter, or to the global
// list when ChapterOrdinal is nil. Items are never deleted.
type TaskItem struct {
	ID             string    `json:"id" yaml:"id"`
	ChapterOrdinal *int      `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Phase          string    `json:"phase,omitempty" yaml:"phase,omitempty"`
	Description    string    `json:"description" yaml:"description"`
	Done           bool      `json:"done" yaml:"done"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// NewTaskItem creates an open task for the given chapter (nil for global).
func NewTaskItem(chapter *int, phase, description string) TaskItem {
	return TaskItem{
		ChapterOrdinal: chapter,
		Phase:          phase,
		Description:    description,
	}
}

// IsGlobal reports whether the task is not tied to a chapter.
func (t TaskItem) IsGlobal() bool {
	return t.ChapterOrdinal == nil
}

// Toggled returns a copy with the completion flag flipped.
func (t TaskItem) Toggled() TaskItem {
	t.Done = !t.Done
	return t
}

// Checkbox returns the markdown checkbox for the task.
func (t TaskItem) Checkbox() string {
	if t.Done {
		return "[x]"
	}
	return "[ ]"
}
