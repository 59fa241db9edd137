package domain

import (
	"fmt"
	"strings"
)

// ChapterStatus is the writing stage of a chapter. The stages are ordered;
// moving backwards is allowed but reported as a regression.
type ChapterStatus string

const (
	StatusNotStarted       ChapterStatus = "not_started"
	StatusOutlining        ChapterStatus = "outlining"
	StatusDrafting         ChapterStatus = "drafting"
	StatusRevising         ChapterStatus = "revising"
	StatusSupervisorReview ChapterStatus = "supervisor_review"
	StatusFinal            ChapterStatus = "final"
)

var chapterStatuses = []ChapterStatus{
	StatusNotStarted,
	StatusOutlining,
	StatusDrafting,
	StatusRevising,
	StatusSupervisorReview,
	StatusFinal,
}

var chapterStatusLabels = map[ChapterStatus]string{
	StatusNotStarted:       "Not Started",
	StatusOutlining:        "Outlining",
	StatusDrafting:         "Drafting",
	StatusRevising:         "Revising",
	StatusSupervisorReview: "Supervisor Review",
	StatusFinal:            "Final",
}

// AllChapterStatuses returns the statuses in workflow order.
func AllChapterStatuses() []ChapterStatus {
	out := make([]ChapterStatus, len(chapterStatuses))
	copy(out, chapterStatuses)
	return out
}

// Rank returns the position of the status in the workflow, or -1.
func (s ChapterStatus) Rank() int {
	for i, status := range chapterStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known status.
func (s ChapterStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Before reports whether s comes earlier in the workflow than other.
func (s ChapterStatus) Before(other ChapterStatus) bool {
	return s.Rank() < other.Rank()
}

// Label returns the display form, e.g. "Supervisor Review".
func (s ChapterStatus) Label() string {
	if label, ok := chapterStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseChapterStatus accepts either the slug ("supervisor_review") or the
// label ("Supervisor Review"), case-insensitively.
func ParseChapterStatus(s string) (ChapterStatus, error) {
	status := ChapterStatus(normalizeEnum(s))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown chapter status %q", s)
	}
	return status, nil
}

// ReadingStatus tracks how far a literature item has been processed.
type ReadingStatus string

const (
	ReadingNotRead ReadingStatus = "not_read"
	ReadingReading ReadingStatus = "reading"
	ReadingRead    ReadingStatus = "read"
	ReadingCited   ReadingStatus = "cited"
)

var readingStatuses = []ReadingStatus{ReadingNotRead, ReadingReading, ReadingRead, ReadingCited}

// AllReadingStatuses returns the reading statuses in order.
func AllReadingStatuses() []ReadingStatus {
	out := make([]ReadingStatus, len(readingStatuses))
	copy(out, readingStatuses)
	return out
}

// IsValid reports whether s is a known reading status.
func (s ReadingStatus) IsValid() bool {
	for _, status := range readingStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Label returns the display form of the reading status.
func (s ReadingStatus) Label() string {
	switch s {
	case ReadingNotRead:
		return "Not Read"
	case ReadingReading:
		return "Reading"
	case ReadingRead:
		return "Read"
	case ReadingCited:
		return "Cited"
	default:
		return string(s)
	}
}

// ParseReadingStatus parses a reading status slug or label.
func ParseReadingStatus(s string) (ReadingStatus, error) {
	status := ReadingStatus(normalizeEnum(s))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown reading status %q", s)
	}
	return status, nil
}

// Priority ranks literature items.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities with high first; unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p.Rank() < 3
}

// Label returns the display form of the priority.
func (p Priority) Label() string {
	if !p.IsValid() {
		return string(p)
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePriority parses a priority name.
func ParsePriority(s string) (Priority, error) {
	p := Priority(normalizeEnum(s))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
