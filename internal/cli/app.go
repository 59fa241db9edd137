package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/config"
	apperrors "manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/render"
	"manuscript-tracker/internal/services"
	"manuscript-tracker/internal/ui"
)

// App represents the main CLI application
type App struct {
	api      api.API
	reports  services.ReportingService
	config   *config.Config
	out      io.Writer
	errOut   io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(api api.API) *App {
	return NewAppWithConfig(api, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(tracker api.API, cfg *config.Config) *App {
	app := &App{
		api:     tracker,
		reports: services.NewReportingService(tracker),
		config:  cfg,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects normal and diagnostic output
func (a *App) SetOutput(out, errOut io.Writer) {
	a.out = out
	a.errOut = errOut
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) warnf(format string, args ...interface{}) {
	fmt.Fprintf(a.errOut, "warning: "+format+"\n", args...)
}

func (a *App) styles() *ui.Styles {
	return ui.NewStyles(ui.ShouldUseColor(a.config.Display.Color, a.out))
}

// renderOptions caps the progress bar at a third of the terminal so table
// rows do not wrap. Non-terminal output keeps the configured width.
func (a *App) renderOptions() render.Options {
	barWidth := a.config.Display.BarWidth
	if cols := ui.TerminalWidth(a.out, 0); cols > 0 && barWidth > cols/3 {
		barWidth = cols / 3
	}
	return render.Options{
		Styles:     a.styles(),
		BarWidth:   barWidth,
		DateFormat: a.config.Display.DateFormat,
	}
}

// parseArgs separates key=value options from positional arguments. Only the
// listed keys are treated as options so free text may still contain "=".
func parseArgs(args []string, keys ...string) ([]string, map[string]string) {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}

	var positional []string
	options := make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok && allowed[k] {
			options[k] = v
			continue
		}
		positional = append(positional, arg)
	}
	return positional, options
}

// parseOrdinal parses a chapter ordinal argument
func parseOrdinal(s string) (int, error) {
	ordinal, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || ordinal < 0 {
		return 0, apperrors.NewInvalidArgumentError("ordinal", s, "chapter ordinal must be a non-negative integer")
	}
	return ordinal, nil
}

// optionBool reads a boolean option; a missing option is false
func optionBool(options map[string]string, key string) (bool, error) {
	raw, ok := options[key]
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.NewInvalidArgumentError(key, raw, "must be true or false")
	}
	return v, nil
}

func usageError(command, usage string) error {
	return apperrors.NewInvalidArgumentError("command", command, "usage: mt "+usage)
}
