package cli

import (
	"context"
	"sort"
	"strings"

	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/render"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("chapter", NewChapterCommand(app))
	registry.Register("task", NewTaskCommand(app))
	registry.Register("feedback", NewFeedbackCommand(app))
	registry.Register("lit", NewLiteratureCommand(app))
	registry.Register("report", NewReportCommand(app))
	registry.Register("checklist", NewChecklistCommand(app))
	registry.Register("export", NewExportCommand(app))
	registry.Register("import", NewImportCommand(app))
	registry.Register("backup", NewBackupCommand(app))
	registry.Register("serve", NewServeCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidArgumentError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	formats := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		formats = append(formats, string(f))
	}
	return "usage: mt <command> [args]\ncommands: " + strings.Join(r.Names(), ", ") +
		"\nreport formats: " + strings.Join(formats, ", ")
}
