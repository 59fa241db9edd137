package api

import (
	"context"
	"fmt"
	"strings"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/idgen"
	"manuscript-tracker/internal/logging"
	"manuscript-tracker/internal/repository/sqlite"
)

// Snapshot reads every table inside one transaction so the result is
// consistent.
func (a *apiImpl) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{TakenAt: a.timestamp()}

	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		chapters, err := tx.ListChapters(ctx)
		if err != nil {
			return err
		}
		tasks, err := tx.ListTasks(ctx, sqlite.TaskFilter{})
		if err != nil {
			return err
		}
		feedback, err := tx.ListFeedback(ctx)
		if err != nil {
			return err
		}
		literature, err := tx.ListLiterature(ctx, sqlite.LiteratureFilter{})
		if err != nil {
			return err
		}

		snapshot.Chapters = a.mapper.Chapter.FromDatabaseSlice(chapters)
		snapshot.Tasks = a.mapper.Task.FromDatabaseSlice(tasks)
		snapshot.Feedback = a.mapper.Feedback.FromDatabaseSlice(feedback)
		snapshot.Literature = a.mapper.Literature.FromDatabaseSlice(literature)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ImportSnapshot writes every record of snapshot into an empty store in a
// single transaction. Records keep their IDs; missing IDs are generated.
// Any invalid record aborts the whole import.
func (a *apiImpl) ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) (*ImportResult, error) {
	if err := a.validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		existing, err := tx.ListChapters(ctx)
		if err != nil {
			return err
		}
		tasks, err := tx.ListTasks(ctx, sqlite.TaskFilter{})
		if err != nil {
			return err
		}
		feedback, err := tx.ListFeedback(ctx)
		if err != nil {
			return err
		}
		literature, err := tx.ListLiterature(ctx, sqlite.LiteratureFilter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 || len(tasks) > 0 || len(feedback) > 0 || len(literature) > 0 {
			return errors.NewInvalidArgumentError("snapshot", "", "the store already has data; import needs an empty store")
		}

		now := a.timestamp()
		for _, chapter := range snapshot.Chapters {
			row := a.mapper.Chapter.ToDatabase(chapter)
			if err := tx.CreateChapter(ctx, &row); err != nil {
				return err
			}
			result.Chapters++
		}
		for _, task := range snapshot.Tasks {
			if task.ID == "" {
				if task.ID, err = a.ids.NewID(idgen.TaskPrefix); err != nil {
					return err
				}
			}
			if task.CreatedAt.IsZero() {
				task.CreatedAt = now
			}
			row := a.mapper.Task.ToDatabase(task)
			if err := tx.CreateTask(ctx, &row); err != nil {
				return err
			}
			result.Tasks++
		}
		for _, entry := range snapshot.Feedback {
			if entry.ID == "" {
				if entry.ID, err = a.ids.NewID(idgen.FeedbackPrefix); err != nil {
					return err
				}
			}
			if entry.Date.IsZero() {
				entry.Date = a.today()
			}
			row := a.mapper.Feedback.ToDatabase(entry)
			if err := tx.CreateFeedback(ctx, &row); err != nil {
				return err
			}
			result.Feedback++
		}
		for _, item := range snapshot.Literature {
			if item.ID == "" {
				if item.ID, err = a.ids.NewID(idgen.LiteraturePrefix); err != nil {
					return err
				}
			}
			row := a.mapper.Literature.ToDatabase(item)
			row.CreatedAt = now
			if err := tx.CreateLiterature(ctx, &row); err != nil {
				return err
			}
			result.Literature++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("imported %d chapters, %d tasks, %d feedback entries, %d literature items",
		result.Chapters, result.Tasks, result.Feedback, result.Literature)
	return result, nil
}

// validateSnapshot checks every record before anything is written.
func (a *apiImpl) validateSnapshot(snapshot domain.Snapshot) error {
	ordinals := make(map[int]bool, len(snapshot.Chapters))
	for i, chapter := range snapshot.Chapters {
		if err := a.chapterValidator.ValidateChapter(chapter); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid chapter at index %d", i), err)
		}
		if ordinals[chapter.Ordinal] {
			return errors.NewInvalidArgumentError("ordinal", fmt.Sprint(chapter.Ordinal), "duplicate chapter ordinal in snapshot")
		}
		ordinals[chapter.Ordinal] = true
	}

	taskIDs := make(map[string]bool, len(snapshot.Tasks))
	for i, task := range snapshot.Tasks {
		if err := a.taskValidator.ValidateTask(task); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid task at index %d", i), err)
		}
		if task.ChapterOrdinal != nil && !ordinals[*task.ChapterOrdinal] {
			return errors.NewInvalidArgumentError("chapter", fmt.Sprint(*task.ChapterOrdinal), "task refers to a chapter missing from the snapshot")
		}
		if err := checkImportID("task", idgen.TaskPrefix, task.ID, taskIDs); err != nil {
			return err
		}
	}

	feedbackIDs := make(map[string]bool, len(snapshot.Feedback))
	for i, entry := range snapshot.Feedback {
		if err := a.feedbackValidator.ValidateFeedbackEntry(entry); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid feedback entry at index %d", i), err)
		}
		if err := checkImportID("feedback", idgen.FeedbackPrefix, entry.ID, feedbackIDs); err != nil {
			return err
		}
	}

	literatureIDs := make(map[string]bool, len(snapshot.Literature))
	for i, item := range snapshot.Literature {
		if err := a.literatureValidator.ValidateLiteratureItem(item); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid literature item at index %d", i), err)
		}
		if err := checkImportID("literature", idgen.LiteraturePrefix, item.ID, literatureIDs); err != nil {
			return err
		}
	}
	return nil
}

// checkImportID rejects an ID with the wrong prefix or one already seen in
// the snapshot. Empty IDs are generated on import.
func checkImportID(kind, prefix, id string, seen map[string]bool) error {
	if id == "" {
		return nil
	}
	if !strings.HasPrefix(id, prefix) {
		return errors.NewInvalidArgumentError("id", id, kind+" IDs start with "+prefix)
	}
	if seen[id] {
		return errors.NewInvalidArgumentError("id", id, "duplicate "+kind+" ID in snapshot")
	}
	seen[id] = true
	return nil
}
