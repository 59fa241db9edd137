package cli

import (
	"context"

	"manuscript-tracker/internal/render"
	"manuscript-tracker/internal/services"
)

// ReportCommand renders the progress report
type ReportCommand struct {
	app          *App
	reports      services.ReportingService
	fixedFormat  render.Format
	errorHandler *ErrorHandler
}

// NewReportCommand creates a report command; the format comes from
// format=<name> or the configured default
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{
		app:          app,
		reports:      app.reports,
		errorHandler: NewErrorHandler(),
	}
}

// NewChecklistCommand creates a report command fixed to the checklist view
func NewChecklistCommand(app *App) *ReportCommand {
	cmd := NewReportCommand(app)
	cmd.fixedFormat = render.FormatChecklist
	return cmd
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "format")
	if len(positional) > 0 {
		return usageError("report", "report [format=table|markdown|checklist|json|yaml]")
	}

	format := c.fixedFormat
	if format == "" {
		name := c.app.config.Commands.ReportDefaultFormat
		if raw, ok := options["format"]; ok {
			name = raw
		}
		parsed, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		format = parsed
	}

	report, err := c.reports.BuildReport(ctx)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}
	return render.Render(c.app.out, report, format, c.app.renderOptions())
}
