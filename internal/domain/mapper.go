package domain

import (
	"manuscript-tracker/internal/repository/sqlite"
)

// Mapper groups the per-entity mappers.
type Mapper struct {
	Chapter    *ChapterMapper
	Task       *TaskMapper
	Feedback   *FeedbackMapper
	Literature *LiteratureMapper
}

// NewMapper creates a Mapper with every entity mapper set.
func NewMapper() *Mapper {
	return &Mapper{
		Chapter:    NewChapterMapper(),
		Task:       NewTaskMapper(),
		Feedback:   NewFeedbackMapper(),
		Literature: NewLiteratureMapper(),
	}
}

// ChapterMapper handles conversion between domain and database Chapter models.
type ChapterMapper struct{}

// NewChapterMapper creates a new ChapterMapper instance.
func NewChapterMapper() *ChapterMapper {
	return &ChapterMapper{}
}

// ToDatabase converts a domain Chapter to a database Chapter. A variable
// target is stored as NULL.
func (m *ChapterMapper) ToDatabase(c Chapter) sqlite.Chapter {
	var target *int64
	if c.Target.IsNumeric() {
		words := int64(c.Target.Words)
		target = &words
	}
	return sqlite.Chapter{
		Ordinal:     int64(c.Ordinal),
		Title:       c.Title,
		Status:      string(c.Status),
		WordCount:   int64(c.WordCount),
		TargetWords: target,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDatabase converts a database Chapter to a domain Chapter.
func (m *ChapterMapper) FromDatabase(c sqlite.Chapter) Chapter {
	target := VariableTarget()
	if c.TargetWords != nil {
		target = NumericTarget(int(*c.TargetWords))
	}
	return Chapter{
		Ordinal:   int(c.Ordinal),
		Title:     c.Title,
		Status:    ChapterStatus(c.Status),
		WordCount: int(c.WordCount),
		Target:    target,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Chapters to domain Chapters.
func (m *ChapterMapper) FromDatabaseSlice(rows []*sqlite.Chapter) []Chapter {
	chapters := make([]Chapter, len(rows))
	for i, row := range rows {
		chapters[i] = m.FromDatabase(*row)
	}
	return chapters
}

// TaskMapper handles conversion between domain and database TaskItem models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain TaskItem to a database TaskItem.
func (m *TaskMapper) ToDatabase(t TaskItem) sqlite.TaskItem {
	var chapter *int64
	if t.ChapterOrdinal != nil {
		ordinal := int64(*t.ChapterOrdinal)
		chapter = &ordinal
	}
	return sqlite.TaskItem{
		ID:             t.ID,
		ChapterOrdinal: chapter,
		Phase:          t.Phase,
		Description:    t.Description,
		Done:           t.Done,
		CreatedAt:      t.CreatedAt,
	}
}

// FromDatabase converts a database TaskItem to a domain TaskItem.
func (m *TaskMapper) FromDatabase(t sqlite.TaskItem) TaskItem {
	var chapter *int
	if t.ChapterOrdinal != nil {
		ordinal := int(*t.ChapterOrdinal)
		chapter = &ordinal
	}
	return TaskItem{
		ID:             t.ID,
		ChapterOrdinal: chapter,
		Phase:          t.Phase,
		Description:    t.Description,
		Done:           t.Done,
		CreatedAt:      t.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TaskItems to domain TaskItems.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.TaskItem) []TaskItem {
	tasks := make([]TaskItem, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// FeedbackMapper handles conversion between domain and database FeedbackEntry models.
type FeedbackMapper struct{}

// NewFeedbackMapper creates a new FeedbackMapper instance.
func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

// ToDatabase converts a domain FeedbackEntry to a database FeedbackEntry.
func (m *FeedbackMapper) ToDatabase(f FeedbackEntry) sqlite.FeedbackEntry {
	return sqlite.FeedbackEntry{
		ID:       f.ID,
		Date:     f.Date,
		Reviewer: f.Reviewer,
		Feedback: f.Feedback,
		Action:   f.Action,
		Done:     f.Done,
	}
}

// FromDatabase converts a database FeedbackEntry to a domain FeedbackEntry.
func (m *FeedbackMapper) FromDatabase(f sqlite.FeedbackEntry) FeedbackEntry {
	return FeedbackEntry{
		ID:       f.ID,
		Date:     f.Date,
		Reviewer: f.Reviewer,
		Feedback: f.Feedback,
		Action:   f.Action,
		Done:     f.Done,
	}
}

// FromDatabaseSlice converts a slice of database FeedbackEntries to domain FeedbackEntries.
func (m *FeedbackMapper) FromDatabaseSlice(rows []*sqlite.FeedbackEntry) []FeedbackEntry {
	entries := make([]FeedbackEntry, len(rows))
	for i, row := range rows {
		entries[i] = m.FromDatabase(*row)
	}
	return entries
}

// LiteratureMapper handles conversion between domain and database LiteratureItem models.
type LiteratureMapper struct{}

// NewLiteratureMapper creates a new LiteratureMapper instance.
func NewLiteratureMapper() *LiteratureMapper {
	return &LiteratureMapper{}
}

// ToDatabase converts a domain LiteratureItem to a database LiteratureItem.
// CreatedAt is left for the caller to stamp.
func (m *LiteratureMapper) ToDatabase(l LiteratureItem) sqlite.LiteratureItem {
	return sqlite.LiteratureItem{
		ID:       l.ID,
		Authors:  l.Authors,
		Year:     l.Year,
		Title:    l.Title,
		Status:   string(l.Status),
		Priority: string(l.Priority),
	}
}

// FromDatabase converts a database LiteratureItem to a domain LiteratureItem.
func (m *LiteratureMapper) FromDatabase(l sqlite.LiteratureItem) LiteratureItem {
	return LiteratureItem{
		ID:       l.ID,
		Authors:  l.Authors,
		Year:     l.Year,
		Title:    l.Title,
		Status:   ReadingStatus(l.Status),
		Priority: Priority(l.Priority),
	}
}

// FromDatabaseSlice converts a slice of database LiteratureItems to domain LiteratureItems.
func (m *LiteratureMapper) FromDatabaseSlice(rows []*sqlite.LiteratureItem) []LiteratureItem {
	items := make([]LiteratureItem, len(rows))
	for i, row := range rows {
		items[i] = m.FromDatabase(*row)
	}
	return items
}
