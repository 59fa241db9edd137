package api

import (
	"context"
	"fmt"
	"strings"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/logging"
	"manuscript-tracker/internal/repository/sqlite"
)

func (a *apiImpl) AddChapter(ctx context.Context, ordinal int, title string, target domain.WordTarget) (*domain.Chapter, error) {
	chapter := domain.NewChapter(ordinal, strings.TrimSpace(title), target)
	if err := a.chapterValidator.ValidateChapter(chapter); err != nil {
		return nil, errors.NewValidationError("invalid chapter", err)
	}

	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		if _, err := tx.GetChapter(ctx, int64(ordinal)); err == nil {
			return errors.NewInvalidArgumentError("ordinal", fmt.Sprint(ordinal), "a chapter with this ordinal already exists")
		} else if !errors.IsNotFound(err) {
			return err
		}
		dbChapter := a.mapper.Chapter.ToDatabase(chapter)
		return tx.CreateChapter(ctx, &dbChapter)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("added chapter %s (target %s)", chapter.Label(), chapter.Target)
	return &chapter, nil
}

func (a *apiImpl) GetChapter(ctx context.Context, ordinal int) (*domain.Chapter, error) {
	if err := a.chapterValidator.ValidateOrdinal(ordinal); err != nil {
		return nil, errors.NewValidationError("invalid chapter ordinal", err)
	}

	dbChapter, err := a.repo.GetChapter(ctx, int64(ordinal))
	if err != nil {
		return nil, err
	}
	chapter := a.mapper.Chapter.FromDatabase(*dbChapter)
	return &chapter, nil
}

func (a *apiImpl) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	dbChapters, err := a.repo.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.Chapter.FromDatabaseSlice(dbChapters), nil
}

func (a *apiImpl) SetChapterStatus(ctx context.Context, ordinal int, status domain.ChapterStatus) (*ChapterUpdate, error) {
	if !status.IsValid() {
		return nil, errors.NewInvalidArgumentError("status", string(status), "unknown chapter status")
	}

	return a.updateChapter(ctx, ordinal, func(c *domain.Chapter) bool {
		if c.Status == status {
			return false
		}
		c.Status = status
		return true
	})
}

func (a *apiImpl) SetWordCount(ctx context.Context, ordinal int, count int) (*ChapterUpdate, error) {
	if count < 0 {
		return nil, errors.NewInvalidArgumentError("word_count", fmt.Sprint(count), "must be zero or greater")
	}

	return a.updateChapter(ctx, ordinal, func(c *domain.Chapter) bool {
		if c.WordCount == count {
			return false
		}
		c.WordCount = count
		return true
	})
}

func (a *apiImpl) SetWordTarget(ctx context.Context, ordinal int, target domain.WordTarget) (*ChapterUpdate, error) {
	if err := a.chapterValidator.ValidateTarget(target); err != nil {
		return nil, errors.NewValidationError("invalid word target", err)
	}

	return a.updateChapter(ctx, ordinal, func(c *domain.Chapter) bool {
		if c.Target == target {
			return false
		}
		c.Target = target
		return true
	})
}

func (a *apiImpl) RenameChapter(ctx context.Context, ordinal int, title string) (*ChapterUpdate, error) {
	if err := a.chapterValidator.ValidateTitle(title); err != nil {
		return nil, errors.NewValidationError("invalid chapter title", err)
	}
	title = strings.TrimSpace(title)

	return a.updateChapter(ctx, ordinal, func(c *domain.Chapter) bool {
		if c.Title == title {
			return false
		}
		c.Title = title
		return true
	})
}

// updateChapter loads a chapter, applies mutate and writes it back with a
// fresh UpdatedAt when mutate reports a change. Unchanged chapters are not
// written.
func (a *apiImpl) updateChapter(ctx context.Context, ordinal int, mutate func(*domain.Chapter) bool) (*ChapterUpdate, error) {
	var update ChapterUpdate

	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		dbChapter, err := tx.GetChapter(ctx, int64(ordinal))
		if err != nil {
			return err
		}

		previous := a.mapper.Chapter.FromDatabase(*dbChapter)
		chapter := previous
		update = ChapterUpdate{Previous: previous, Chapter: chapter}
		if !mutate(&chapter) {
			return nil
		}

		updatedAt := a.timestamp()
		chapter.UpdatedAt = &updatedAt
		row := a.mapper.Chapter.ToDatabase(chapter)
		if err := tx.UpdateChapter(ctx, &row); err != nil {
			return err
		}
		update.Chapter = chapter
		update.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if update.Changed {
		logging.Debugf("updated chapter %s", update.Chapter.Label())
	}
	return &update, nil
}
