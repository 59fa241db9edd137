package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"manuscript-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	snapshot *domain.Snapshot
	err      error
}

func (s *stubSource) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return s.snapshot, s.err
}

func intPtr(v int) *int { return &v }

func testSnapshot() domain.Snapshot {
	intro := domain.NewChapter(1, "Introduction", domain.NumericTarget(300))
	intro.WordCount = 300
	intro.Status = domain.StatusFinal
	background := domain.NewChapter(2, "Background", domain.NumericTarget(8000))
	background.WordCount = 4000
	background.Status = domain.StatusDrafting
	appendix := domain.NewChapter(9, "Appendix", domain.VariableTarget())
	appendix.WordCount = 1500

	return domain.Snapshot{
		TakenAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Chapters: []domain.Chapter{intro, background, appendix},
		Tasks: []domain.TaskItem{
			{ID: "task-1", ChapterOrdinal: intPtr(2), Description: "Related work", Done: true},
			{ID: "task-2", Phase: "Submission", Description: "Print copies"},
			{ID: "task-3", ChapterOrdinal: intPtr(2), Description: "Figures"},
			{ID: "task-4", Description: "Back up sources", Done: true},
			{ID: "task-5", Phase: "Submission", Description: "Sign declaration"},
			{ID: "task-6", ChapterOrdinal: intPtr(1), Description: "Proofread", Done: true},
		},
		Feedback: []domain.FeedbackEntry{
			{ID: "fb-1", Reviewer: "Supervisor", Feedback: "Clarify scope", Done: true},
			{ID: "fb-2", Reviewer: "Supervisor", Feedback: "Add baseline"},
		},
		Literature: []domain.LiteratureItem{
			{ID: "lit-1", Title: "A", Status: domain.ReadingCited, Priority: domain.PriorityHigh},
			{ID: "lit-2", Title: "B", Status: domain.ReadingNotRead, Priority: domain.PriorityLow},
			{ID: "lit-3", Title: "C", Status: domain.ReadingCited, Priority: domain.PriorityLow},
		},
	}
}

func TestBuildReportFromSnapshot_Rows(t *testing.T) {
	report := NewReportingService(&stubSource{}).BuildReportFromSnapshot(testSnapshot())

	require.Len(t, report.Chapters, 3)
	intro, background, appendix := report.Chapters[0], report.Chapters[1], report.Chapters[2]

	require.NotNil(t, intro.Fraction)
	assert.InDelta(t, 1.0, *intro.Fraction, 1e-9)
	require.NotNil(t, background.Fraction)
	assert.InDelta(t, 0.5, *background.Fraction, 1e-9)
	assert.Nil(t, appendix.Fraction, "variable targets have no fraction")

	assert.Equal(t, 1, background.TasksDone)
	assert.Equal(t, 2, background.TasksTotal)
	assert.Equal(t, "2. Background", background.Label())

	assert.InDelta(t, 4300.0/8300.0, report.Aggregate, 1e-9)
	assert.True(t, report.GeneratedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestBuildReportFromSnapshot_Totals(t *testing.T) {
	report := NewReportingService(&stubSource{}).BuildReportFromSnapshot(testSnapshot())

	totals := report.Totals
	assert.Equal(t, 5800, totals.WordsWritten)
	assert.Equal(t, 8300, totals.WordsTargeted)
	assert.Equal(t, 3, totals.TasksDone)
	assert.Equal(t, 6, totals.TasksTotal)
	assert.Equal(t, 1, totals.FeedbackOpen)
	assert.Equal(t, 2, totals.FeedbackTotal)
	assert.Equal(t, 1, totals.ChaptersFinal)
	assert.Equal(t, map[domain.ReadingStatus]int{
		domain.ReadingNotRead: 1,
		domain.ReadingReading: 0,
		domain.ReadingRead:    0,
		domain.ReadingCited:   2,
	}, totals.Literature)
}

func TestBuildReportFromSnapshot_Checklist(t *testing.T) {
	report := NewReportingService(&stubSource{}).BuildReportFromSnapshot(testSnapshot())

	require.Len(t, report.Checklist, 4)

	titles := make([]string, len(report.Checklist))
	for i, group := range report.Checklist {
		titles[i] = group.Title
	}
	assert.Equal(t, []string{"1. Introduction", "2. Background", "Submission", "General"}, titles)

	background := report.Checklist[1]
	require.NotNil(t, background.Chapter)
	assert.Equal(t, 2, *background.Chapter)
	assert.Equal(t, []string{"task-1", "task-3"}, []string{background.Items[0].ID, background.Items[1].ID})
	assert.Equal(t, 1, background.Done())

	submission := report.Checklist[2]
	assert.Nil(t, submission.Chapter)
	assert.Len(t, submission.Items, 2)
	assert.Equal(t, 0, submission.Done())
}

func TestBuildReportFromSnapshot_Empty(t *testing.T) {
	report := NewReportingService(&stubSource{}).BuildReportFromSnapshot(domain.Snapshot{})

	assert.Empty(t, report.Chapters)
	assert.NotNil(t, report.Checklist)
	assert.Zero(t, report.Aggregate)
	assert.Len(t, report.Totals.Literature, 4)
}

func TestBuildReport(t *testing.T) {
	snapshot := testSnapshot()

	t.Run("uses the source snapshot", func(t *testing.T) {
		report, err := NewReportingService(&stubSource{snapshot: &snapshot}).BuildReport(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Chapters, 3)
	})

	t.Run("propagates source errors", func(t *testing.T) {
		_, err := NewReportingService(&stubSource{err: stderrors.New("database is locked")}).BuildReport(context.Background())
		assert.EqualError(t, err, "database is locked")
	})
}
