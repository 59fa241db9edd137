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

// AddFeedbackEntry appends an entry. The ID is always generated and a zero
// Date defaults to today.
func (a *apiImpl) AddFeedbackEntry(ctx context.Context, entry domain.FeedbackEntry) (*domain.FeedbackEntry, error) {
	entry.Reviewer = strings.TrimSpace(entry.Reviewer)
	entry.Feedback = strings.TrimSpace(entry.Feedback)
	entry.Action = strings.TrimSpace(entry.Action)
	if err := a.feedbackValidator.ValidateFeedbackEntry(entry); err != nil {
		return nil, errors.NewValidationError("invalid feedback entry", err)
	}

	id, err := a.ids.NewID(idgen.FeedbackPrefix)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if entry.Date.IsZero() {
		entry.Date = a.today()
	}

	row := a.mapper.Feedback.ToDatabase(entry)
	if err := a.repo.CreateFeedback(ctx, &row); err != nil {
		return nil, err
	}

	logging.Debugf("logged feedback %s from %s", entry.ID, entry.Reviewer)
	return &entry, nil
}

func (a *apiImpl) MarkFeedbackDone(ctx context.Context, id string, action string) (*domain.FeedbackEntry, error) {
	action = strings.TrimSpace(action)
	if err := a.feedbackValidator.ValidateAction(action); err != nil {
		return nil, errors.NewValidationError("invalid action", err)
	}

	var entry domain.FeedbackEntry
	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetFeedback(ctx, id)
		if err != nil {
			return err
		}
		entry = a.mapper.Feedback.FromDatabase(*row)
		if entry.Done && (action == "" || action == entry.Action) {
			return nil
		}
		entry.Done = true
		if action != "" {
			entry.Action = action
		}
		updated := a.mapper.Feedback.ToDatabase(entry)
		return tx.UpdateFeedback(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a *apiImpl) ListFeedback(ctx context.Context, openOnly bool) ([]domain.FeedbackEntry, error) {
	rows, err := a.repo.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}

	entries := a.mapper.Feedback.FromDatabaseSlice(rows)
	if !openOnly {
		return entries, nil
	}
	open := entries[:0]
	for _, entry := range entries {
		if entry.IsOpen() {
			open = append(open, entry)
		}
	}
	return open, nil
}
