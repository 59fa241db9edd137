package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/services"
	"manuscript-tracker/internal/ui"
)

const columnGap = "  "

// Table prints the aligned progress table followed by totals
func Table(w io.Writer, report *services.Report, opts Options) error {
	opts = opts.withDefaults()
	s := opts.Styles
	out := &errWriter{w: w}

	if len(report.Chapters) == 0 {
		out.println("No chapters found")
		return out.err
	}

	header := []string{"Chapter", "Status", "Words", "Target", "Progress", "Tasks", "Updated"}
	rows := make([][]string, 0, len(report.Chapters))
	for _, row := range report.Chapters {
		rows = append(rows, []string{
			row.Label(),
			s.Status(row.Status),
			strconv.Itoa(row.WordCount),
			row.Target.String(),
			progressCell(s, row.Fraction, opts.BarWidth),
			fmt.Sprintf("%d/%d", row.TasksDone, row.TasksTotal),
			updatedCell(row, opts.DateFormat),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = ui.Width(h)
	}
	for _, cells := range rows {
		for i, cell := range cells {
			if n := ui.Width(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	total := 0
	for _, n := range widths {
		total += n + len(columnGap)
	}
	total -= len(columnGap)

	headings := make([]string, len(header))
	for i, h := range header {
		headings[i] = s.Heading(h)
	}
	out.println(joinRow(headings, widths))
	out.println(strings.Repeat("-", total))
	for _, cells := range rows {
		out.println(joinRow(cells, widths))
	}
	out.println(strings.Repeat("-", total))

	t := report.Totals
	out.printf("Overall: %s %s (%d of %d targeted words)\n",
		s.ProgressBar(report.Aggregate, opts.BarWidth),
		s.Fraction(report.Aggregate, Percent(report.Aggregate)),
		wordsTowardTarget(report), t.WordsTargeted)
	out.printf("Words written: %d\n", t.WordsWritten)
	out.printf("Chapters final: %d/%d\n", t.ChaptersFinal, len(report.Chapters))
	out.printf("Tasks done: %d/%d\n", t.TasksDone, t.TasksTotal)
	out.printf("Open feedback: %d of %d\n", t.FeedbackOpen, t.FeedbackTotal)
	out.printf("Literature: %s\n", literatureSummary(t))

	return out.err
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = ui.PadRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

func progressCell(s *ui.Styles, fraction *float64, barWidth int) string {
	if fraction == nil {
		return s.Muted("n/a")
	}
	return s.ProgressBar(*fraction, barWidth/2) + " " + s.Fraction(*fraction, Percent(*fraction))
}

func updatedCell(row services.ChapterRow, layout string) string {
	if row.UpdatedAt == nil {
		return "-"
	}
	return row.UpdatedAt.Local().Format(layout)
}

// wordsTowardTarget sums word counts of the chapters with a numeric target.
func wordsTowardTarget(report *services.Report) int {
	total := 0
	for _, row := range report.Chapters {
		if row.Fraction == nil {
			continue
		}
		total += row.WordCount
	}
	return total
}

func literatureSummary(t services.Totals) string {
	parts := make([]string, 0, len(t.Literature))
	for _, status := range domain.AllReadingStatuses() {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(status.Label()), t.Literature[status]))
	}
	return strings.Join(parts, ", ")
}
