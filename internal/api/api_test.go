package api

import (
	"context"
	"testing"
	"time"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/idgen"
	"manuscript-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a fixed time that tests can advance.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTestAPI(t *testing.T) (API, *fakeClock) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	return New(repo, WithClock(clock.Now), WithIDGenerator(idgen.NewSequence())), clock
}

func intPtr(v int) *int { return &v }

func assertErrorType(t *testing.T, err error, errorType errors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorType, appErr.Type, "error: %v", err)
}

func TestAddChapter(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()

	chapter, err := api.AddChapter(ctx, 1, "  Introduction ", domain.NumericTarget(8000))
	require.NoError(t, err)
	assert.Equal(t, "Introduction", chapter.Title)
	assert.Equal(t, domain.StatusNotStarted, chapter.Status)
	assert.Nil(t, chapter.UpdatedAt)

	t.Run("duplicate ordinal is an invalid argument", func(t *testing.T) {
		_, err := api.AddChapter(ctx, 1, "Other", domain.VariableTarget())
		assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		_, err := api.AddChapter(ctx, 2, "", domain.VariableTarget())
		assertErrorType(t, err, errors.ErrorTypeValidation)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	chapters, err := api.ListChapters(ctx)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
}

func TestSetChapterStatus(t *testing.T) {
	api, clock := setupTestAPI(t)
	ctx := context.Background()
	_, err := api.AddChapter(ctx, 2, "Background", domain.NumericTarget(8000))
	require.NoError(t, err)

	t.Run("changing the status stamps UpdatedAt", func(t *testing.T) {
		update, err := api.SetChapterStatus(ctx, 2, domain.StatusDrafting)
		require.NoError(t, err)
		assert.True(t, update.Changed)
		assert.Equal(t, domain.StatusDrafting, update.Chapter.Status)
		require.NotNil(t, update.Chapter.UpdatedAt)
		assert.True(t, clock.Now().Equal(*update.Chapter.UpdatedAt))
	})

	t.Run("setting the same status is a no-op", func(t *testing.T) {
		before, err := api.GetChapter(ctx, 2)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		update, err := api.SetChapterStatus(ctx, 2, domain.StatusDrafting)
		require.NoError(t, err)
		assert.False(t, update.Changed)

		after, err := api.GetChapter(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	})

	t.Run("moving backwards is allowed and flagged", func(t *testing.T) {
		update, err := api.SetChapterStatus(ctx, 2, domain.StatusOutlining)
		require.NoError(t, err)
		assert.True(t, update.Changed)
		assert.True(t, update.Regressed())
		assert.Equal(t, domain.StatusDrafting, update.Previous.Status)
	})

	t.Run("unknown status is an invalid argument", func(t *testing.T) {
		_, err := api.SetChapterStatus(ctx, 2, domain.ChapterStatus("published"))
		assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
	})

	t.Run("unknown chapter is not found and leaves the store unchanged", func(t *testing.T) {
		before, err := api.ListChapters(ctx)
		require.NoError(t, err)

		_, err = api.SetChapterStatus(ctx, 99, domain.StatusFinal)
		assertErrorType(t, err, errors.ErrorTypeNotFound)

		after, err := api.ListChapters(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestSetWordCount(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()
	_, err := api.AddChapter(ctx, 1, "Introduction", domain.NumericTarget(300))
	require.NoError(t, err)

	update, err := api.SetWordCount(ctx, 1, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, update.Chapter.WordCount)
	assert.Equal(t, 0, update.Previous.WordCount)

	_, err = api.SetWordCount(ctx, 1, -1)
	assertErrorType(t, err, errors.ErrorTypeInvalidArgument)

	_, err = api.SetWordCount(ctx, 5, 10)
	assertErrorType(t, err, errors.ErrorTypeNotFound)

	chapter, err := api.GetChapter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 250, chapter.WordCount, "failed mutations do not touch the chapter")

	same, err := api.SetWordCount(ctx, 1, 250)
	require.NoError(t, err)
	assert.False(t, same.Changed)
}

func TestSetWordTargetAndRename(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()
	_, err := api.AddChapter(ctx, 3, "Methods", domain.NumericTarget(6000))
	require.NoError(t, err)

	update, err := api.SetWordTarget(ctx, 3, domain.VariableTarget())
	require.NoError(t, err)
	assert.True(t, update.Chapter.Target.Variable)

	_, err = api.SetWordTarget(ctx, 3, domain.NumericTarget(-10))
	assertErrorType(t, err, errors.ErrorTypeValidation)

	renamed, err := api.RenameChapter(ctx, 3, "Methodology")
	require.NoError(t, err)
	assert.Equal(t, "Methodology", renamed.Chapter.Title)
	assert.Equal(t, "Methods", renamed.Previous.Title)

	_, err = api.RenameChapter(ctx, 3, "")
	assertErrorType(t, err, errors.ErrorTypeValidation)
}

func TestTasks(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()
	_, err := api.AddChapter(ctx, 1, "Introduction", domain.NumericTarget(3000))
	require.NoError(t, err)

	chapterTask, err := api.AddTask(ctx, intPtr(1), "", "Write motivation")
	require.NoError(t, err)
	assert.Equal(t, "task-1", chapterTask.ID)
	assert.False(t, chapterTask.Done)

	global, err := api.AddTask(ctx, nil, "Submission", "Book the viva room")
	require.NoError(t, err)
	assert.True(t, global.IsGlobal())

	t.Run("task for unknown chapter is not found", func(t *testing.T) {
		_, err := api.AddTask(ctx, intPtr(7), "", "Orphan")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		_, err := api.AddTask(ctx, nil, "", "  ")
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("toggling twice restores the original flag", func(t *testing.T) {
		once, err := api.ToggleTask(ctx, chapterTask.ID)
		require.NoError(t, err)
		assert.True(t, once.Done)

		twice, err := api.ToggleTask(ctx, chapterTask.ID)
		require.NoError(t, err)
		assert.Equal(t, chapterTask.Done, twice.Done)
	})

	t.Run("toggling an unknown task is not found", func(t *testing.T) {
		_, err := api.ToggleTask(ctx, "task-missing")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		_, err := api.ToggleTask(ctx, global.ID)
		require.NoError(t, err)

		forChapter, err := api.ListTasks(ctx, TaskFilter{Chapter: intPtr(1)})
		require.NoError(t, err)
		assert.Len(t, forChapter, 1)

		globalOnly, err := api.ListTasks(ctx, TaskFilter{GlobalOnly: true})
		require.NoError(t, err)
		require.Len(t, globalOnly, 1)
		assert.Equal(t, "Submission", globalOnly[0].Phase)

		open, err := api.ListTasks(ctx, TaskFilter{OpenOnly: true})
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, chapterTask.ID, open[0].ID)
	})
}

func TestAddFeedbackEntry(t *testing.T) {
	api, clock := setupTestAPI(t)
	ctx := context.Background()

	t.Run("empty reviewer and feedback are rejected without appending", func(t *testing.T) {
		_, err := api.AddFeedbackEntry(ctx, domain.FeedbackEntry{})
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))

		entries, err := api.ListFeedback(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	entry, err := api.AddFeedbackEntry(ctx, domain.FeedbackEntry{Reviewer: "Supervisor", Feedback: "Shorten the abstract"})
	require.NoError(t, err)
	assert.Equal(t, "fb-1", entry.ID)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), entry.Date, "date defaults to today")
	assert.True(t, entry.IsOpen())

	clock.Advance(24 * time.Hour)
	dated := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	_, err = api.AddFeedbackEntry(ctx, domain.FeedbackEntry{Date: dated, Reviewer: "Examiner", Feedback: "Fix references", Action: "Checked all DOIs", Done: true})
	require.NoError(t, err)

	entries, err := api.ListFeedback(ctx, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Examiner", entries[0].Reviewer, "log is ordered by date")

	open, err := api.ListFeedback(ctx, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, entry.ID, open[0].ID)
}

func TestMarkFeedbackDone(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()
	entry, err := api.AddFeedbackEntry(ctx, domain.FeedbackEntry{Reviewer: "Supervisor", Feedback: "Add a limitations section"})
	require.NoError(t, err)

	done, err := api.MarkFeedbackDone(ctx, entry.ID, "Added 5.4")
	require.NoError(t, err)
	assert.True(t, done.Done)
	assert.Equal(t, "Added 5.4", done.Action)

	again, err := api.MarkFeedbackDone(ctx, entry.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Added 5.4", again.Action, "an empty action keeps the recorded one")

	_, err = api.MarkFeedbackDone(ctx, "fb-404", "")
	assertErrorType(t, err, errors.ErrorTypeNotFound)
}

func TestLiterature(t *testing.T) {
	api, _ := setupTestAPI(t)
	ctx := context.Background()

	low, err := api.AddLiterature(ctx, domain.LiteratureItem{Title: "Old survey", Priority: domain.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingNotRead, low.Status)

	high, err := api.AddLiterature(ctx, domain.LiteratureItem{Authors: "Ho et al.", Year: "2020", Title: "DDPM", Priority: domain.PriorityHigh})
	require.NoError(t, err)

	defaulted, err := api.AddLiterature(ctx, domain.LiteratureItem{Authors: "Song"})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, defaulted.Priority)

	_, err = api.AddLiterature(ctx, domain.LiteratureItem{})
	assertErrorType(t, err, errors.ErrorTypeValidation)

	items, err := api.ListLiterature(ctx, LiteratureFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, high.ID, items[0].ID)
	assert.Equal(t, low.ID, items[2].ID)

	cited, err := api.SetReadingStatus(ctx, high.ID, domain.ReadingCited)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingCited, cited.Status)

	_, err = api.SetReadingStatus(ctx, high.ID, domain.ReadingStatus("skimmed"))
	assertErrorType(t, err, errors.ErrorTypeInvalidArgument)

	promoted, err := api.SetLiteraturePriority(ctx, low.ID, domain.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, promoted.Priority)

	_, err = api.SetLiteraturePriority(ctx, "lit-404", domain.PriorityLow)
	assertErrorType(t, err, errors.ErrorTypeNotFound)

	status := domain.ReadingCited
	filtered, err := api.ListLiterature(ctx, LiteratureFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, high.ID, filtered[0].ID)
}
