package services

import (
	"context"
	"time"

	"manuscript-tracker/internal/domain"
)

// SnapshotSource supplies the store contents a report is built from.
// api.API satisfies it.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// ChapterRow is one line of the progress table
type ChapterRow struct {
	Ordinal    int                  `json:"ordinal" yaml:"ordinal"`
	Title      string               `json:"title" yaml:"title"`
	Status     domain.ChapterStatus `json:"status" yaml:"status"`
	WordCount  int                  `json:"word_count" yaml:"word_count"`
	Target     domain.WordTarget    `json:"target" yaml:"target"`
	Fraction   *float64             `json:"fraction,omitempty" yaml:"fraction,omitempty"` // nil for variable targets
	TasksDone  int                  `json:"tasks_done" yaml:"tasks_done"`
	TasksTotal int                  `json:"tasks_total" yaml:"tasks_total"`
	UpdatedAt  *time.Time           `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Label returns "<ordinal>. <title>".
func (r ChapterRow) Label() string {
	return domain.Chapter{Ordinal: r.Ordinal, Title: r.Title}.Label()
}

// Totals summarises the whole manuscript
type Totals struct {
	WordsWritten  int                          `json:"words_written" yaml:"words_written"`
	WordsTargeted int                          `json:"words_targeted" yaml:"words_targeted"`
	TasksDone     int                          `json:"tasks_done" yaml:"tasks_done"`
	TasksTotal    int                          `json:"tasks_total" yaml:"tasks_total"`
	FeedbackOpen  int                          `json:"feedback_open" yaml:"feedback_open"`
	FeedbackTotal int                          `json:"feedback_total" yaml:"feedback_total"`
	ChaptersFinal int                          `json:"chapters_final" yaml:"chapters_final"`
	Literature    map[domain.ReadingStatus]int `json:"literature" yaml:"literature"`
}

// ChecklistGroup is a heading and its tasks. Chapter groups carry the
// ordinal; global groups carry the phase.
type ChecklistGroup struct {
	Title   string            `json:"title" yaml:"title"`
	Chapter *int              `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Phase   string            `json:"phase,omitempty" yaml:"phase,omitempty"`
	Items   []domain.TaskItem `json:"items" yaml:"items"`
}

// Done counts the completed items of the group.
func (g ChecklistGroup) Done() int {
	done := 0
	for _, item := range g.Items {
		if item.Done {
			done++
		}
	}
	return done
}

// Report is everything the renderers need
type Report struct {
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Chapters    []ChapterRow            `json:"chapters" yaml:"chapters"`
	Aggregate   float64                 `json:"aggregate" yaml:"aggregate"`
	Totals      Totals                  `json:"totals" yaml:"totals"`
	Checklist   []ChecklistGroup        `json:"checklist" yaml:"checklist"`
	Feedback    []domain.FeedbackEntry  `json:"feedback" yaml:"feedback"`
	Literature  []domain.LiteratureItem `json:"literature" yaml:"literature"`
}

// ReportingService builds progress reports
type ReportingService interface {
	// BuildReport takes a fresh snapshot and computes the report
	BuildReport(ctx context.Context) (*Report, error)

	// BuildReportFromSnapshot computes the report without touching the store
	BuildReportFromSnapshot(snapshot domain.Snapshot) *Report
}
