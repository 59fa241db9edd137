package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// TaskFilter narrows ListTasks. Zero value lists every task.
type TaskFilter struct {
	ChapterOrdinal *int64
	GlobalOnly     bool
	Done           *bool
}

// LiteratureFilter narrows ListLiterature. Zero value lists every item.
type LiteratureFilter struct {
	Status   *string
	Priority *string
}

// Repository defines the interface for database operations. Rows are never
// deleted: the tracker only appends and updates.
type Repository interface {
	// Chapters
	CreateChapter(ctx context.Context, chapter *Chapter) error
	GetChapter(ctx context.Context, ordinal int64) (*Chapter, error)
	ListChapters(ctx context.Context) ([]*Chapter, error)
	UpdateChapter(ctx context.Context, chapter *Chapter) error

	// Tasks
	CreateTask(ctx context.Context, task *TaskItem) error
	GetTask(ctx context.Context, id string) (*TaskItem, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*TaskItem, error)
	UpdateTask(ctx context.Context, task *TaskItem) error

	// Feedback
	CreateFeedback(ctx context.Context, entry *FeedbackEntry) error
	GetFeedback(ctx context.Context, id string) (*FeedbackEntry, error)
	ListFeedback(ctx context.Context) ([]*FeedbackEntry, error)
	UpdateFeedback(ctx context.Context, entry *FeedbackEntry) error

	// Literature
	CreateLiterature(ctx context.Context, item *LiteratureItem) error
	GetLiterature(ctx context.Context, id string) (*LiteratureItem, error)
	ListLiterature(ctx context.Context, filter LiteratureFilter) ([]*LiteratureItem, error)
	UpdateLiterature(ctx context.Context, item *LiteratureItem) error

	// RunInTransaction runs fn against a repository bound to one transaction.
	RunInTransaction(ctx context.Context, fn func(tx Repository) error) error

	// Utility
	Close() error
}

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithQueryTimeout bounds every statement issued by the repository.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = d
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	conn         DBTX
	queryTimeout time.Duration
}

var _ Repository = (*SQLiteRepository)(nil)

// New opens the SQLite database at dbPath and applies pending migrations.
// Use ":memory:" for a throwaway store.
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	return NewFromDB(db, opts...)
}

// NewFromDB wraps an open handle and applies pending migrations.
func NewFromDB(db *sql.DB, opts ...Option) (*SQLiteRepository, error) {
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return newRepository(db, opts...), nil
}

func newRepository(db *sql.DB, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{db: db, conn: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// RunInTransaction runs fn in a single transaction, rolling back on error.
func (r *SQLiteRepository) RunInTransaction(ctx context.Context, fn func(tx Repository) error) error {
	if _, nested := r.conn.(*sql.Tx); nested {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	txRepo := &SQLiteRepository{db: r.db, conn: tx, queryTimeout: r.queryTimeout}
	if err := fn(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

const chapterColumns = `ordinal, title, status, word_count, target_words, updated_at`

// CreateChapter inserts a chapter; the ordinal must be unused.
func (r *SQLiteRepository) CreateChapter(ctx context.Context, chapter *Chapter) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO chapters (` + chapterColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create chapter", query,
		chapter.Ordinal, chapter.Title, chapter.Status, chapter.WordCount,
		nullableInt64(chapter.TargetWords), FormatTimePtrForDB(chapter.UpdatedAt))
}

// GetChapter retrieves a chapter by ordinal
func (r *SQLiteRepository) GetChapter(ctx context.Context, ordinal int64) (*Chapter, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE ordinal = ?`
	return QuerySingle(ctx, r.conn, query, ScanChapter, "chapter", fmt.Sprintf("%d", ordinal), ordinal)
}

// ListChapters retrieves all chapters in manuscript order
func (r *SQLiteRepository) ListChapters(ctx context.Context) ([]*Chapter, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + chapterColumns + ` FROM chapters ORDER BY ordinal ASC`
	return QueryMultiple(ctx, r.conn, query, ScanChapters, "chapters")
}

// UpdateChapter overwrites every mutable column of a chapter
func (r *SQLiteRepository) UpdateChapter(ctx context.Context, chapter *Chapter) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE chapters
	SET title = ?, status = ?, word_count = ?, target_words = ?, updated_at = ?
	WHERE ordinal = ?`

	return ExecuteWithRowsAffected(ctx, r.conn, query, "chapter", fmt.Sprintf("%d", chapter.Ordinal),
		chapter.Title, chapter.Status, chapter.WordCount, nullableInt64(chapter.TargetWords),
		FormatTimePtrForDB(chapter.UpdatedAt), chapter.Ordinal)
}

const taskColumns = `id, chapter_ordinal, phase, description, done, created_at`

// CreateTask inserts a task item
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *TaskItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create task", query,
		task.ID, nullableInt64(task.ChapterOrdinal), task.Phase, task.Description, task.Done,
		FormatTimeForDB(task.CreatedAt))
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*TaskItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.conn, query, ScanTaskItem, "task", id, id)
}

// ListTasks retrieves tasks matching the filter in creation order
func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskFilter) ([]*TaskItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}

	if filter.ChapterOrdinal != nil {
		conditions = append(conditions, "chapter_ordinal = ?")
		args = append(args, *filter.ChapterOrdinal)
	} else if filter.GlobalOnly {
		conditions = append(conditions, "chapter_ordinal IS NULL")
	}
	if filter.Done != nil {
		conditions = append(conditions, "done = ?")
		args = append(args, *filter.Done)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	return QueryMultiple(ctx, r.conn, query, ScanTaskItems, "tasks", args...)
}

// UpdateTask updates a task's mutable columns
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *TaskItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET chapter_ordinal = ?, phase = ?, description = ?, done = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.conn, query, "task", task.ID,
		nullableInt64(task.ChapterOrdinal), task.Phase, task.Description, task.Done, task.ID)
}

const feedbackColumns = `id, entry_date, reviewer, feedback, action, done`

// CreateFeedback appends a feedback entry
func (r *SQLiteRepository) CreateFeedback(ctx context.Context, entry *FeedbackEntry) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO feedback (` + feedbackColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create feedback", query,
		entry.ID, FormatTimeForDB(entry.Date), entry.Reviewer, entry.Feedback, entry.Action, entry.Done)
}

// GetFeedback retrieves a feedback entry by ID
func (r *SQLiteRepository) GetFeedback(ctx context.Context, id string) (*FeedbackEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = ?`
	return QuerySingle(ctx, r.conn, query, ScanFeedbackEntry, "feedback entry", id, id)
}

// ListFeedback retrieves the feedback log oldest first
func (r *SQLiteRepository) ListFeedback(ctx context.Context) ([]*FeedbackEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY entry_date ASC, rowid ASC`
	return QueryMultiple(ctx, r.conn, query, ScanFeedbackEntries, "feedback entries")
}

// UpdateFeedback updates the action and completion of an entry
func (r *SQLiteRepository) UpdateFeedback(ctx context.Context, entry *FeedbackEntry) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE feedback SET action = ?, done = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.conn, query, "feedback entry", entry.ID, entry.Action, entry.Done, entry.ID)
}

const literatureColumns = `id, authors, year, title, status, priority, created_at`

// CreateLiterature inserts a literature item
func (r *SQLiteRepository) CreateLiterature(ctx context.Context, item *LiteratureItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO literature (` + literatureColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create literature item", query,
		item.ID, item.Authors, item.Year, item.Title, item.Status, item.Priority, FormatTimeForDB(item.CreatedAt))
}

// GetLiterature retrieves a literature item by ID
func (r *SQLiteRepository) GetLiterature(ctx context.Context, id string) (*LiteratureItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + literatureColumns + ` FROM literature WHERE id = ?`
	return QuerySingle(ctx, r.conn, query, ScanLiteratureItem, "literature item", id, id)
}

// ListLiterature retrieves literature matching the filter, highest priority first
func (r *SQLiteRepository) ListLiterature(ctx context.Context, filter LiteratureFilter) ([]*LiteratureItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}

	query := `SELECT ` + literatureColumns + ` FROM literature`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END, created_at ASC, rowid ASC`

	return QueryMultiple(ctx, r.conn, query, ScanLiteratureItems, "literature items", args...)
}

// UpdateLiterature updates a literature item
func (r *SQLiteRepository) UpdateLiterature(ctx context.Context, item *LiteratureItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE literature
	SET authors = ?, year = ?, title = ?, status = ?, priority = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.conn, query, "literature item", item.ID,
		item.Authors, item.Year, item.Title, item.Status, item.Priority, item.ID)
}
