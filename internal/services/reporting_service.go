package services

import (
	"context"

	"manuscript-tracker/internal/domain"
)

// generalPhase titles global tasks that have no phase.
const generalPhase = "General"

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	source SnapshotSource
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(source SnapshotSource) ReportingService {
	return &reportingServiceImpl{source: source}
}

// BuildReport takes a snapshot and computes the report from it
func (r *reportingServiceImpl) BuildReport(ctx context.Context) (*Report, error) {
	snapshot, err := r.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return r.BuildReportFromSnapshot(*snapshot), nil
}

// BuildReportFromSnapshot computes rows, aggregate, totals and checklist
func (r *reportingServiceImpl) BuildReportFromSnapshot(snapshot domain.Snapshot) *Report {
	report := &Report{
		GeneratedAt: snapshot.TakenAt,
		Chapters:    make([]ChapterRow, 0, len(snapshot.Chapters)),
		Aggregate:   AggregateProgress(snapshot.Chapters),
		Checklist:   buildChecklist(snapshot),
		Feedback:    snapshot.Feedback,
		Literature:  snapshot.Literature,
		Totals: Totals{
			Literature: make(map[domain.ReadingStatus]int),
		},
	}

	for _, chapter := range snapshot.Chapters {
		row := ChapterRow{
			Ordinal:   chapter.Ordinal,
			Title:     chapter.Title,
			Status:    chapter.Status,
			WordCount: chapter.WordCount,
			Target:    chapter.Target,
			UpdatedAt: chapter.UpdatedAt,
		}
		if fraction, ok := ChapterFraction(chapter.WordCount, chapter.Target); ok {
			row.Fraction = &fraction
			report.Totals.WordsTargeted += chapter.Target.Words
		}
		for _, task := range snapshot.TasksFor(chapter.Ordinal) {
			row.TasksTotal++
			if task.Done {
				row.TasksDone++
			}
		}
		if chapter.Status == domain.StatusFinal {
			report.Totals.ChaptersFinal++
		}
		report.Totals.WordsWritten += chapter.WordCount
		report.Chapters = append(report.Chapters, row)
	}

	for _, task := range snapshot.Tasks {
		report.Totals.TasksTotal++
		if task.Done {
			report.Totals.TasksDone++
		}
	}
	for _, entry := range snapshot.Feedback {
		report.Totals.FeedbackTotal++
		if entry.IsOpen() {
			report.Totals.FeedbackOpen++
		}
	}
	for _, status := range domain.AllReadingStatuses() {
		report.Totals.Literature[status] = 0
	}
	for _, item := range snapshot.Literature {
		report.Totals.Literature[item.Status]++
	}

	return report
}

// buildChecklist groups chapter tasks by chapter in ordinal order, then
// global tasks by phase in order of first appearance.
func buildChecklist(snapshot domain.Snapshot) []ChecklistGroup {
	groups := make([]ChecklistGroup, 0)

	for _, chapter := range snapshot.Chapters {
		tasks := snapshot.TasksFor(chapter.Ordinal)
		if len(tasks) == 0 {
			continue
		}
		ordinal := chapter.Ordinal
		groups = append(groups, ChecklistGroup{
			Title:   chapter.Label(),
			Chapter: &ordinal,
			Items:   tasks,
		})
	}

	phaseIndex := make(map[string]int)
	for _, task := range snapshot.GlobalTasks() {
		phase := task.Phase
		if phase == "" {
			phase = generalPhase
		}
		idx, ok := phaseIndex[phase]
		if !ok {
			idx = len(groups)
			phaseIndex[phase] = idx
			groups = append(groups, ChecklistGroup{Title: phase, Phase: phase})
		}
		groups[idx].Items = append(groups[idx].Items, task)
	}

	return groups
}
