package sqlite

import "time"

// Chapter is the chapters table row. A nil TargetWords stores a variable target.
type Chapter struct {
	Ordinal     int64
	Title       string
	Status      string
	WordCount   int64
	TargetWords *int64
	UpdatedAt   *time.Time
}

// TaskItem is the tasks table row. A nil ChapterOrdinal marks a global task.
type TaskItem struct {
	ID             string
	ChapterOrdinal *int64
	Phase          string
	Description    string
	Done           bool
	CreatedAt      time.Time
}

// FeedbackEntry is the feedback table row.
type FeedbackEntry struct {
	ID       string
	Date     time.Time
	Reviewer string
	Feedback string
	Action   string
	Done     bool
}

// LiteratureItem is the literature table row.
type LiteratureItem struct {
	ID        string
	Authors   string
	Year      string
	Title     string
	Status    string
	Priority  string
	CreatedAt time.Time
}
