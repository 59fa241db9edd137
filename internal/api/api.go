package api

import (
	"context"
	"time"

	"manuscript-tracker/internal/config"
	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/idgen"
	"manuscript-tracker/internal/repository/sqlite"
	"manuscript-tracker/internal/validation"
)

var timeNow = time.Now

// API is the tracker store: every read and mutation of chapters, tasks,
// feedback and literature goes through it. A failed mutation leaves the
// store unchanged.
type API interface {
	// ========== Chapters ==========

	// AddChapter creates a not-started chapter; the ordinal must be unused
	AddChapter(ctx context.Context, ordinal int, title string, target domain.WordTarget) (*domain.Chapter, error)

	// GetChapter returns one chapter by ordinal
	GetChapter(ctx context.Context, ordinal int) (*domain.Chapter, error)

	// ListChapters returns every chapter in ordinal order
	ListChapters(ctx context.Context) ([]domain.Chapter, error)

	// SetChapterStatus moves a chapter to a new status
	SetChapterStatus(ctx context.Context, ordinal int, status domain.ChapterStatus) (*ChapterUpdate, error)

	// SetWordCount records the current word count of a chapter
	SetWordCount(ctx context.Context, ordinal int, count int) (*ChapterUpdate, error)

	// SetWordTarget changes the target of a chapter
	SetWordTarget(ctx context.Context, ordinal int, target domain.WordTarget) (*ChapterUpdate, error)

	// RenameChapter changes the title of a chapter
	RenameChapter(ctx context.Context, ordinal int, title string) (*ChapterUpdate, error)

	// ========== Tasks ==========

	// AddTask adds an open checklist item to a chapter, or to the global list when chapter is nil
	AddTask(ctx context.Context, chapter *int, phase, description string) (*domain.TaskItem, error)

	// ToggleTask flips the completion flag of a task
	ToggleTask(ctx context.Context, id string) (*domain.TaskItem, error)

	// ListTasks returns tasks in creation order
	ListTasks(ctx context.Context, filter TaskFilter) ([]domain.TaskItem, error)

	// ========== Feedback ==========

	// AddFeedbackEntry appends to the feedback log
	AddFeedbackEntry(ctx context.Context, entry domain.FeedbackEntry) (*domain.FeedbackEntry, error)

	// MarkFeedbackDone closes an entry, optionally recording the action taken
	MarkFeedbackDone(ctx context.Context, id string, action string) (*domain.FeedbackEntry, error)

	// ListFeedback returns the log oldest first
	ListFeedback(ctx context.Context, openOnly bool) ([]domain.FeedbackEntry, error)

	// ========== Literature ==========

	// AddLiterature adds a reference to the reading list
	AddLiterature(ctx context.Context, item domain.LiteratureItem) (*domain.LiteratureItem, error)

	// SetReadingStatus updates how far a reference has been processed
	SetReadingStatus(ctx context.Context, id string, status domain.ReadingStatus) (*domain.LiteratureItem, error)

	// SetLiteraturePriority updates the priority of a reference
	SetLiteraturePriority(ctx context.Context, id string, priority domain.Priority) (*domain.LiteratureItem, error)

	// ListLiterature returns references, highest priority first
	ListLiterature(ctx context.Context, filter LiteratureFilter) ([]domain.LiteratureItem, error)

	// ========== Snapshots ==========

	// Snapshot returns the full store contents
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// ImportSnapshot seeds an empty store from an exported snapshot
	ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) (*ImportResult, error)
}

// ChapterUpdate describes the outcome of a chapter mutation.
type ChapterUpdate struct {
	Chapter  domain.Chapter `json:"chapter"`
	Previous domain.Chapter `json:"previous"`
	Changed  bool           `json:"changed"`
}

// Regressed reports whether the status moved backwards.
func (u ChapterUpdate) Regressed() bool {
	return u.Chapter.Status.Before(u.Previous.Status)
}

// TaskFilter narrows ListTasks. The zero value lists everything.
type TaskFilter struct {
	Chapter    *int
	GlobalOnly bool
	OpenOnly   bool
}

// LiteratureFilter narrows ListLiterature. The zero value lists everything.
type LiteratureFilter struct {
	Status   *domain.ReadingStatus
	Priority *domain.Priority
}

// ImportResult counts the records written by ImportSnapshot.
type ImportResult struct {
	Chapters   int `json:"chapters"`
	Tasks      int `json:"tasks"`
	Feedback   int `json:"feedback"`
	Literature int `json:"literature"`
}

// Option configures the API.
type Option func(*apiImpl)

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *apiImpl) { a.now = now }
}

// WithIDGenerator replaces the record ID generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(a *apiImpl) { a.ids = gen }
}

// WithConfig applies configured validation limits.
func WithConfig(cfg *config.Config) Option {
	return func(a *apiImpl) {
		a.chapterValidator = validation.NewChapterValidatorWithConfig(cfg)
		a.taskValidator = validation.NewTaskValidatorWithConfig(cfg)
		a.feedbackValidator = validation.NewFeedbackValidatorWithConfig(cfg)
		a.literatureValidator = validation.NewLiteratureValidatorWithConfig(cfg)
	}
}

type apiImpl struct {
	repo                sqlite.Repository
	mapper              *domain.Mapper
	ids                 idgen.Generator
	now                 func() time.Time
	chapterValidator    *validation.ChapterValidator
	taskValidator       *validation.TaskValidator
	feedbackValidator   *validation.FeedbackValidator
	literatureValidator *validation.LiteratureValidator
}

// New creates a new API instance.
func New(repo sqlite.Repository, opts ...Option) API {
	a := &apiImpl{
		repo:                repo,
		mapper:              domain.NewMapper(),
		ids:                 idgen.NanoID{},
		now:                 timeNow,
		chapterValidator:    validation.NewChapterValidator(),
		taskValidator:       validation.NewTaskValidator(),
		feedbackValidator:   validation.NewFeedbackValidator(),
		literatureValidator: validation.NewLiteratureValidator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// timestamp returns now at the precision the store keeps.
func (a *apiImpl) timestamp() time.Time {
	return a.now().UTC().Truncate(time.Second)
}

// today returns midnight UTC of the current local date.
func (a *apiImpl) today() time.Time {
	y, m, d := a.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
