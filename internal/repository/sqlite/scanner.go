package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanChapter scans a single chapter from a database row
func ScanChapter(scanner Scanner) (*Chapter, error) {
	chapter := &Chapter{}
	var target sql.NullInt64
	var updatedAt sql.NullString

	err := scanner.Scan(
		&chapter.Ordinal,
		&chapter.Title,
		&chapter.Status,
		&chapter.WordCount,
		&target,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if target.Valid {
		chapter.TargetWords = &target.Int64
	}
	if chapter.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, err
	}
	return chapter, nil
}

// ScanChapters scans multiple chapters from database rows
func ScanChapters(rows Rows) ([]*Chapter, error) {
	return scanAll(rows, ScanChapter)
}

// ScanTaskItem scans a single task from a database row
func ScanTaskItem(scanner Scanner) (*TaskItem, error) {
	task := &TaskItem{}
	var chapter sql.NullInt64
	var createdAt string

	err := scanner.Scan(
		&task.ID,
		&chapter,
		&task.Phase,
		&task.Description,
		&task.Done,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if chapter.Valid {
		task.ChapterOrdinal = &chapter.Int64
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTaskItems scans multiple tasks from database rows
func ScanTaskItems(rows Rows) ([]*TaskItem, error) {
	return scanAll(rows, ScanTaskItem)
}

// ScanFeedbackEntry scans a single feedback entry from a database row
func ScanFeedbackEntry(scanner Scanner) (*FeedbackEntry, error) {
	entry := &FeedbackEntry{}
	var date string

	err := scanner.Scan(
		&entry.ID,
		&date,
		&entry.Reviewer,
		&entry.Feedback,
		&entry.Action,
		&entry.Done,
	)
	if err != nil {
		return nil, err
	}

	if entry.Date, err = ParseTimeFromDB(date); err != nil {
		return nil, err
	}
	return entry, nil
}

// ScanFeedbackEntries scans multiple feedback entries from database rows
func ScanFeedbackEntries(rows Rows) ([]*FeedbackEntry, error) {
	return scanAll(rows, ScanFeedbackEntry)
}

// ScanLiteratureItem scans a single literature item from a database row
func ScanLiteratureItem(scanner Scanner) (*LiteratureItem, error) {
	item := &LiteratureItem{}
	var createdAt string

	err := scanner.Scan(
		&item.ID,
		&item.Authors,
		&item.Year,
		&item.Title,
		&item.Status,
		&item.Priority,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if item.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return item, nil
}

// ScanLiteratureItems scans multiple literature items from database rows
func ScanLiteratureItems(rows Rows) ([]*LiteratureItem, error) {
	return scanAll(rows, ScanLiteratureItem)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
