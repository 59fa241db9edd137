package domain

import "time"

// FeedbackEntry records one piece of reviewer input and what was done about
// it. The feedback log is append-only.
type FeedbackEntry struct {
	ID       string    `json:"id" yaml:"id"`
	Date     time.Time `json:"date" yaml:"date"`
	Reviewer string    `json:"reviewer" yaml:"reviewer"`
	Feedback string    `json:"feedback" yaml:"feedback"`
	Action   string    `json:"action,omitempty" yaml:"action,omitempty"`
	Done     bool      `json:"done" yaml:"done"`
}

// IsOpen reports whether the feedback still needs action.
func (f FeedbackEntry) IsOpen() bool {
	return !f.Done
}
