package api

import (
	"context"
	"strings"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/idgen"
	"manuscript-tracker/internal/repository/sqlite"
)

// AddLiterature stores a new reference. Unset status and priority default
// to not_read and medium.
func (a *apiImpl) AddLiterature(ctx context.Context, item domain.LiteratureItem) (*domain.LiteratureItem, error) {
	item.Authors = strings.TrimSpace(item.Authors)
	item.Year = strings.TrimSpace(item.Year)
	item.Title = strings.TrimSpace(item.Title)
	if item.Status == "" {
		item.Status = domain.ReadingNotRead
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityMedium
	}
	if err := a.literatureValidator.ValidateLiteratureItem(item); err != nil {
		return nil, errors.NewValidationError("invalid literature item", err)
	}

	id, err := a.ids.NewID(idgen.LiteraturePrefix)
	if err != nil {
		return nil, err
	}
	item.ID = id

	row := a.mapper.Literature.ToDatabase(item)
	row.CreatedAt = a.timestamp()
	if err := a.repo.CreateLiterature(ctx, &row); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *apiImpl) SetReadingStatus(ctx context.Context, id string, status domain.ReadingStatus) (*domain.LiteratureItem, error) {
	if !status.IsValid() {
		return nil, errors.NewInvalidArgumentError("status", string(status), "unknown reading status")
	}
	return a.updateLiterature(ctx, id, func(item *domain.LiteratureItem) bool {
		if item.Status == status {
			return false
		}
		item.Status = status
		return true
	})
}

func (a *apiImpl) SetLiteraturePriority(ctx context.Context, id string, priority domain.Priority) (*domain.LiteratureItem, error) {
	if !priority.IsValid() {
		return nil, errors.NewInvalidArgumentError("priority", string(priority), "unknown priority")
	}
	return a.updateLiterature(ctx, id, func(item *domain.LiteratureItem) bool {
		if item.Priority == priority {
			return false
		}
		item.Priority = priority
		return true
	})
}

func (a *apiImpl) updateLiterature(ctx context.Context, id string, mutate func(*domain.LiteratureItem) bool) (*domain.LiteratureItem, error) {
	var item domain.LiteratureItem

	err := a.repo.RunInTransaction(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetLiterature(ctx, id)
		if err != nil {
			return err
		}
		item = a.mapper.Literature.FromDatabase(*row)
		if !mutate(&item) {
			return nil
		}
		updated := a.mapper.Literature.ToDatabase(item)
		updated.CreatedAt = row.CreatedAt
		return tx.UpdateLiterature(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *apiImpl) ListLiterature(ctx context.Context, filter LiteratureFilter) ([]domain.LiteratureItem, error) {
	var dbFilter sqlite.LiteratureFilter
	if filter.Status != nil {
		status := string(*filter.Status)
		dbFilter.Status = &status
	}
	if filter.Priority != nil {
		priority := string(*filter.Priority)
		dbFilter.Priority = &priority
	}

	rows, err := a.repo.ListLiterature(ctx, dbFilter)
	if err != nil {
		return nil, err
	}
	return a.mapper.Literature.FromDatabaseSlice(rows), nil
}
