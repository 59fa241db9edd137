package render

import (
	"fmt"
	"io"
	"strings"

	"manuscript-tracker/internal/services"
)

// Markdown writes the report as a planning document: progress table,
// checklists, feedback log and reading list.
func Markdown(w io.Writer, report *services.Report, opts Options) error {
	opts = opts.withDefaults()
	out := &errWriter{w: w}

	out.println("# Manuscript Progress")
	out.println("")
	if !report.GeneratedAt.IsZero() {
		out.printf("_Generated %s_\n\n", report.GeneratedAt.Local().Format(opts.DateFormat))
	}
	out.printf("**Overall progress:** %s (%d / %d words)\n\n",
		Percent(report.Aggregate), wordsTowardTarget(report), report.Totals.WordsTargeted)

	out.println("## Chapters")
	out.println("")
	if len(report.Chapters) == 0 {
		out.println("_No chapters yet._")
	} else {
		out.println("| # | Chapter | Status | Words | Target | Progress | Tasks |")
		out.println("|---|---|---|---:|---:|---:|---:|")
		for _, row := range report.Chapters {
			progress := "n/a"
			if row.Fraction != nil {
				progress = Percent(*row.Fraction)
			}
			out.printf("| %d | %s | %s | %d | %s | %s | %d/%d |\n",
				row.Ordinal, cell(row.Title), row.Status.Label(), row.WordCount,
				row.Target.String(), progress, row.TasksDone, row.TasksTotal)
		}
	}
	out.println("")

	out.println("## Checklist")
	out.println("")
	if len(report.Checklist) == 0 {
		out.println("_No tasks yet._")
		out.println("")
	}
	for _, group := range report.Checklist {
		out.printf("### %s\n\n", group.Title)
		for _, item := range group.Items {
			out.printf("- %s %s\n", item.Checkbox(), oneLine(item.Description))
		}
		out.println("")
	}

	out.println("## Feedback Log")
	out.println("")
	if len(report.Feedback) == 0 {
		out.println("_No feedback recorded._")
	} else {
		out.println("| Date | Reviewer | Feedback | Action | Done |")
		out.println("|---|---|---|---|:---:|")
		for _, entry := range report.Feedback {
			done := " "
			if entry.Done {
				done = "x"
			}
			out.printf("| %s | %s | %s | %s | %s |\n",
				entry.Date.Format(opts.DateFormat), cell(entry.Reviewer),
				cell(entry.Feedback), cell(entry.Action), done)
		}
	}

	if len(report.Literature) > 0 {
		out.println("")
		out.println("## Literature")
		out.println("")
		out.println("| Reference | Priority | Status |")
		out.println("|---|---|---|")
		for _, item := range report.Literature {
			out.printf("| %s | %s | %s |\n", cell(item.Citation()), item.Priority.Label(), item.Status.Label())
		}
	}

	return out.err
}

// cell makes text safe for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Checklist writes the flattened checklist view grouped by chapter then phase.
func Checklist(w io.Writer, report *services.Report, opts Options) error {
	opts = opts.withDefaults()
	s := opts.Styles
	out := &errWriter{w: w}

	if len(report.Checklist) == 0 {
		out.println("No tasks found")
		return out.err
	}

	for i, group := range report.Checklist {
		if i > 0 {
			out.println("")
		}
		out.printf("%s %s\n", s.Heading(group.Title), s.Muted(fmt.Sprintf("(%d/%d)", group.Done(), len(group.Items))))
		for _, item := range group.Items {
			out.printf("  %s %s %s\n", item.Checkbox(), oneLine(item.Description), s.Muted(item.ID))
		}
	}
	return out.err
}
