package api

import (
	"context"
	"strings"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/idgen"
	"manuscript-tracker/internal/logging"
	"manuscript-tracker/internal/repository/sqlite"
)

func (a *apiImpl) AddTask(ctx context.Context, chapter *int, phase, description string) (*domain.TaskItem, error) {
	task := domain.NewTaskItem(chapter, strings.TrimSpace(phase), strings.TrimSpace(description))
	if err := a.taskValidator.ValidateTask(task); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	id, err := a.ids.NewID(idgen.TaskPrefix)
	if err != nil {
		return nil, err
	}
	task.ID = id
	task.CreatedAt = a.timestamp()

	err = a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		if chapter != nil {
			if _, err := tx.GetChapter(ctx, int64(*chapter)); err != nil {
				return err
			}
		}
		row := a.mapper.Task.ToDatabase(task)
		return tx.CreateTask(ctx, &row)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("added task %s", task.ID)
	return &task, nil
}

func (a *apiImpl) ToggleTask(ctx context.Context, id string) (*domain.TaskItem, error) {
	var task domain.TaskItem

	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}
		task = a.mapper.Task.FromDatabase(*row).Toggled()
		updated := a.mapper.Task.ToDatabase(task)
		return tx.UpdateTask(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("task %s done=%t", task.ID, task.Done)
	return &task, nil
}

func (a *apiImpl) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.TaskItem, error) {
	dbFilter := sqlite.TaskFilter{GlobalOnly: filter.GlobalOnly}
	if filter.Chapter != nil {
		ordinal := int64(*filter.Chapter)
		dbFilter.ChapterOrdinal = &ordinal
	}
	if filter.OpenOnly {
		open := false
		dbFilter.Done = &open
	}

	rows, err := a.repo.ListTasks(ctx, dbFilter)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(rows), nil
}
