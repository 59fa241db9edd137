package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/repository/sqlite/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "mt.db"), WithQueryTimeout(5*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func int64Ptr(v int64) *int64 { return &v }

func TestNew_AppliesMigrations(t *testing.T) {
	repo := setupTestDB(t)

	version, dirty, err := migrations.Version(repo.db)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}

func TestNew_InMemory(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	chapters, err := repo.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestChapterCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	intro := &Chapter{Ordinal: 1, Title: "Introduction", Status: "drafting", WordCount: 1200, TargetWords: int64Ptr(8000)}
	appendix := &Chapter{Ordinal: 9, Title: "Appendix", Status: "not_started"}
	require.NoError(t, repo.CreateChapter(ctx, appendix))
	require.NoError(t, repo.CreateChapter(ctx, intro))

	got, err := repo.GetChapter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Introduction", got.Title)
	require.NotNil(t, got.TargetWords)
	assert.Equal(t, int64(8000), *got.TargetWords)
	assert.Nil(t, got.UpdatedAt)

	variable, err := repo.GetChapter(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, variable.TargetWords, "NULL target reads back as variable")

	chapters, err := repo.ListChapters(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, int64(1), chapters[0].Ordinal, "chapters are ordered by ordinal")

	updated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	got.Status = "revising"
	got.WordCount = 7600
	got.UpdatedAt = &updated
	require.NoError(t, repo.UpdateChapter(ctx, got))

	reloaded, err := repo.GetChapter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "revising", reloaded.Status)
	assert.Equal(t, int64(7600), reloaded.WordCount)
	require.NotNil(t, reloaded.UpdatedAt)
	assert.True(t, updated.Equal(*reloaded.UpdatedAt))
}

func TestChapter_DuplicateOrdinalFails(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateChapter(ctx, &Chapter{Ordinal: 2, Title: "Background", Status: "not_started"}))
	err := repo.CreateChapter(ctx, &Chapter{Ordinal: 2, Title: "Other", Status: "not_started"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestChapter_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.GetChapter(ctx, 42)
	assert.True(t, errors.IsNotFound(err))

	err = repo.UpdateChapter(ctx, &Chapter{Ordinal: 42, Title: "Ghost", Status: "final"})
	assert.True(t, errors.IsNotFound(err))
}

func TestTaskCRUDAndFilters(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateChapter(ctx, &Chapter{Ordinal: 3, Title: "Methods", Status: "outlining"}))

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	tasks := []*TaskItem{
		{ID: "task-a", ChapterOrdinal: int64Ptr(3), Description: "Write data section", CreatedAt: base},
		{ID: "task-b", Phase: "Submission", Description: "Book viva date", CreatedAt: base.Add(time.Minute)},
		{ID: "task-c", ChapterOrdinal: int64Ptr(3), Description: "Add figure", Done: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, task := range tasks {
		require.NoError(t, repo.CreateTask(ctx, task))
	}

	all, err := repo.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "task-a", all[0].ID)

	chapterTasks, err := repo.ListTasks(ctx, TaskFilter{ChapterOrdinal: int64Ptr(3)})
	require.NoError(t, err)
	assert.Len(t, chapterTasks, 2)

	global, err := repo.ListTasks(ctx, TaskFilter{GlobalOnly: true})
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "Submission", global[0].Phase)
	assert.Nil(t, global[0].ChapterOrdinal)

	done := true
	completed, err := repo.ListTasks(ctx, TaskFilter{Done: &done})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "task-c", completed[0].ID)

	got, err := repo.GetTask(ctx, "task-a")
	require.NoError(t, err)
	got.Done = true
	require.NoError(t, repo.UpdateTask(ctx, got))
	reloaded, err := repo.GetTask(ctx, "task-a")
	require.NoError(t, err)
	assert.True(t, reloaded.Done)
	assert.True(t, base.Equal(reloaded.CreatedAt))

	_, err = repo.GetTask(ctx, "task-missing")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(repo.UpdateTask(ctx, &TaskItem{ID: "task-missing"})))
}

func TestFeedbackLog(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	later := &FeedbackEntry{ID: "fb-2", Date: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), Reviewer: "Supervisor", Feedback: "Tighten the abstract"}
	earlier := &FeedbackEntry{ID: "fb-1", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Reviewer: "Co-supervisor", Feedback: "Cite recent work", Action: "Added 3 refs", Done: true}
	require.NoError(t, repo.CreateFeedback(ctx, later))
	require.NoError(t, repo.CreateFeedback(ctx, earlier))

	entries, err := repo.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fb-1", entries[0].ID, "log is ordered by date")
	assert.Equal(t, "Added 3 refs", entries[0].Action)
	assert.True(t, entries[0].Done)

	later.Action = "Rewrote abstract"
	later.Done = true
	require.NoError(t, repo.UpdateFeedback(ctx, later))
	got, err := repo.GetFeedback(ctx, "fb-2")
	require.NoError(t, err)
	assert.Equal(t, "Rewrote abstract", got.Action)
	assert.True(t, got.Done)

	_, err = repo.GetFeedback(ctx, "fb-none")
	assert.True(t, errors.IsNotFound(err))
}

func TestLiterature(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []*LiteratureItem{
		{ID: "lit-low", Title: "Old survey", Status: "read", Priority: "low", CreatedAt: now},
		{ID: "lit-high", Authors: "Ho et al.", Year: "2020", Title: "Denoising Diffusion", Status: "cited", Priority: "high", CreatedAt: now},
		{ID: "lit-med", Authors: "Goodfellow", Year: "2014", Status: "not_read", Priority: "medium", CreatedAt: now},
	}
	for _, item := range items {
		require.NoError(t, repo.CreateLiterature(ctx, item))
	}

	all, err := repo.ListLiterature(ctx, LiteratureFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"lit-high", "lit-med", "lit-low"}, []string{all[0].ID, all[1].ID, all[2].ID})

	status := "cited"
	cited, err := repo.ListLiterature(ctx, LiteratureFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, cited, 1)
	assert.Equal(t, "Ho et al.", cited[0].Authors)

	got, err := repo.GetLiterature(ctx, "lit-med")
	require.NoError(t, err)
	got.Status = "reading"
	require.NoError(t, repo.UpdateLiterature(ctx, got))
	reloaded, err := repo.GetLiterature(ctx, "lit-med")
	require.NoError(t, err)
	assert.Equal(t, "reading", reloaded.Status)
}

func TestRunInTransaction(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := repo.RunInTransaction(ctx, func(tx Repository) error {
			return tx.CreateChapter(ctx, &Chapter{Ordinal: 1, Title: "Intro", Status: "not_started"})
		})
		require.NoError(t, err)
		_, err = repo.GetChapter(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		err := repo.RunInTransaction(ctx, func(tx Repository) error {
			if err := tx.CreateChapter(ctx, &Chapter{Ordinal: 2, Title: "Background", Status: "not_started"}); err != nil {
				return err
			}
			return tx.CreateChapter(ctx, &Chapter{Ordinal: 1, Title: "Duplicate", Status: "not_started"})
		})
		require.Error(t, err)
		_, err = repo.GetChapter(ctx, 2)
		assert.True(t, errors.IsNotFound(err), "chapter 2 must not survive the rollback")
	})
}
