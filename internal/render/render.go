// Package render turns a progress report into text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/services"
	"manuscript-tracker/internal/ui"
)

// Format names an output format
type Format string

const (
	FormatTable     Format = "table"
	FormatMarkdown  Format = "markdown"
	FormatChecklist Format = "checklist"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatTable, FormatMarkdown, FormatChecklist, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name, case-insensitive. "md" is an alias for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", apperrors.NewInvalidArgumentError("format", s, "must be one of table, markdown, checklist, json, yaml")
}

// Options tune the human-readable formats
type Options struct {
	Styles     *ui.Styles
	BarWidth   int
	DateFormat string
}

func (o Options) withDefaults() Options {
	if o.Styles == nil {
		o.Styles = ui.NewStyles(false)
	}
	if o.BarWidth <= 0 {
		o.BarWidth = 20
	}
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02"
	}
	return o
}

// Render writes report to w in the given format
func Render(w io.Writer, report *services.Report, format Format, opts Options) error {
	opts = opts.withDefaults()
	switch format {
	case FormatTable:
		return Table(w, report, opts)
	case FormatMarkdown:
		return Markdown(w, report, opts)
	case FormatChecklist:
		return Checklist(w, report, opts)
	case FormatJSON:
		return JSON(w, report)
	case FormatYAML:
		return YAML(w, report)
	default:
		return apperrors.NewInvalidArgumentError("format", string(format), "unsupported format")
	}
}

// JSON writes v as indented JSON
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// YAML writes v as a YAML document
func YAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// Percent formats a fraction as a whole percentage
func Percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// errWriter remembers the first write error so renderers can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	e.printf("%s\n", s)
}
