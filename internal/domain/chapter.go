package domain

import (
	"fmt"
	"time"
)

// Chapter is one unit of the manuscript. Ordinal and Title together identify
// it; Ordinal alone is the key used by every operation.
type Chapter struct {
	Ordinal   int           `json:"ordinal" yaml:"ordinal"`
	Title     string        `json:"title" yaml:"title"`
	Status    ChapterStatus `json:"status" yaml:"status"`
	WordCount int           `json:"word_count" yaml:"word_count"`
	Target    WordTarget    `json:"target" yaml:"target"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewChapter creates a chapter that has not been started yet.
func NewChapter(ordinal int, title string, target WordTarget) Chapter {
	return Chapter{
		Ordinal: ordinal,
		Title:   title,
		Status:  StatusNotStarted,
		Target:  target,
	}
}

// IsValid checks if the chapter has valid data.
func (c Chapter) IsValid() bool {
	return c.Ordinal >= 0 && c.Title != "" && c.Status.IsValid() && c.WordCount >= 0 &&
		(c.Target.Variable || c.Target.Words >= 0)
}

// Label returns "<ordinal>. <title>" for display.
func (c Chapter) Label() string {
	return fmt.Sprintf("%d. %s", c.Ordinal, c.Title)
}

// String returns the chapter label.
func (c Chapter) String() string {
	return c.Label()
}
