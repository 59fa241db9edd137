package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/export"
	"manuscript-tracker/internal/render"
	"manuscript-tracker/internal/services"
)

// ExportCommand writes the tracker to a file or stdout
type ExportCommand struct {
	app          *App
	api          api.API
	reports      services.ReportingService
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		api:          app.api,
		reports:      app.reports,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command. markdown and csv export the report;
// json and yaml export the full snapshot, which mt import reads back.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "format", "out")
	if len(positional) > 0 {
		return usageError("export", "export [format=markdown|json|yaml|csv] [out=<file>]")
	}

	format := strings.ToLower(c.app.config.Commands.ExportDefaultFormat)
	if raw, ok := options["format"]; ok {
		format = strings.ToLower(strings.TrimSpace(raw))
	}

	var buf bytes.Buffer
	switch format {
	case "markdown", "md":
		report, err := c.reports.BuildReport(ctx)
		if err != nil {
			return c.errorHandler.Handle("export", err)
		}
		if err := render.Markdown(&buf, report, render.Options{DateFormat: c.app.config.Display.DateFormat}); err != nil {
			return err
		}
	case "csv":
		report, err := c.reports.BuildReport(ctx)
		if err != nil {
			return c.errorHandler.Handle("export", err)
		}
		if err := export.WriteCSV(&buf, report); err != nil {
			return err
		}
	case "json", "yaml", "yml":
		snapshot, err := c.api.Snapshot(ctx)
		if err != nil {
			return c.errorHandler.Handle("export", err)
		}
		snapshotFormat, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		if err := export.EncodeSnapshot(&buf, snapshot, snapshotFormat); err != nil {
			return err
		}
	default:
		return errors.NewInvalidArgumentError("format", format, "export format must be markdown, json, yaml or csv")
	}

	out := options["out"]
	if out == "" || out == "-" {
		_, err := c.app.out.Write(buf.Bytes())
		return err
	}
	if err := export.WriteFileAtomic(out, buf.Bytes(), 0o644); err != nil {
		return c.errorHandler.Handle("export", err)
	}
	fmt.Fprintf(c.app.errOut, "Exported %s to %s\n", format, out)
	return nil
}

// ImportCommand seeds an empty store from an exported snapshot
type ImportCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "format")
	if len(positional) != 1 {
		return usageError("import", "import <file> [format=json|yaml]")
	}
	path := positional[0]

	format := export.FormatFromPath(path)
	if raw, ok := options["format"]; ok {
		parsed, err := export.ParseFormat(raw)
		if err != nil {
			return err
		}
		format = parsed
	}

	f, err := os.Open(path)
	if err != nil {
		return c.errorHandler.Handle("import", err)
	}
	defer f.Close()

	snapshot, err := export.DecodeSnapshot(f, format)
	if err != nil {
		return c.errorHandler.Handle("import", err)
	}
	result, err := c.api.ImportSnapshot(ctx, *snapshot)
	if err != nil {
		return c.errorHandler.Handle("import", err)
	}
	c.app.printf("Imported %d chapters, %d tasks, %d feedback entries, %d literature items\n",
		result.Chapters, result.Tasks, result.Feedback, result.Literature)
	return nil
}

// BackupCommand writes the snapshot to the configured backup destinations
type BackupCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler

	// newS3 is replaced in tests
	newS3 func(ctx context.Context, bucket, key, region, endpoint string, format export.Format) (export.Destination, error)
}

// NewBackupCommand creates a new backup command handler
func NewBackupCommand(app *App) *BackupCommand {
	return &BackupCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
		newS3: func(ctx context.Context, bucket, key, region, endpoint string, format export.Format) (export.Destination, error) {
			return export.NewS3Destination(ctx, bucket, key, region, endpoint, format)
		},
	}
}

// Execute runs the backup command
func (c *BackupCommand) Execute(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "format", "path")
	if len(positional) > 0 {
		return usageError("backup", "backup [format=json|yaml] [path=<file>]")
	}

	cfg := c.app.config.Backup
	formatName := cfg.Format
	if raw, ok := options["format"]; ok {
		formatName = raw
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	path := cfg.Path
	if raw, ok := options["path"]; ok {
		path = raw
	}

	var destinations []export.Destination
	if path != "" {
		destinations = append(destinations, export.NewFileDestination(path))
	}
	if cfg.S3Bucket != "" {
		s3, err := c.newS3(ctx, cfg.S3Bucket, cfg.S3Key, cfg.S3Region, cfg.S3Endpoint, format)
		if err != nil {
			return c.errorHandler.Handle("configure S3 backup", err)
		}
		destinations = append(destinations, s3)
	}
	if len(destinations) == 0 {
		return errors.NewInvalidArgumentError("backup", "", "no backup destination configured; set backup.path or backup.s3_bucket")
	}

	snapshot, err := c.api.Snapshot(ctx)
	if err != nil {
		return c.errorHandler.Handle("backup", err)
	}
	if err := export.Backup(ctx, snapshot, format, destinations...); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	for _, dest := range destinations {
		c.app.printf("Backed up to %s\n", dest)
	}
	return nil
}
