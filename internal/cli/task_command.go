package cli

import (
	"context"
	"strconv"
	"strings"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/errors"
)

const taskUsage = "task add [chapter=<ordinal>] [phase=<phase>] <description> | toggle <id> | " +
	"list [chapter=<ordinal>] [global=true] [open=true]"

// TaskCommand handles checklist items
type TaskCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the task command
func (c *TaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("task", taskUsage)
	}

	action, rest := args[0], args[1:]
	switch action {
	case "add":
		return c.add(ctx, rest)
	case "toggle", "done":
		return c.toggle(ctx, rest)
	case "list", "ls":
		return c.list(ctx, rest)
	default:
		return usageError("task "+action, taskUsage)
	}
}

func (c *TaskCommand) add(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "chapter", "phase")
	if len(positional) == 0 {
		return usageError("task add", "task add [chapter=<ordinal>] [phase=<phase>] <description>")
	}

	var chapter *int
	if raw, ok := options["chapter"]; ok {
		ordinal, err := parseOrdinal(raw)
		if err != nil {
			return err
		}
		chapter = &ordinal
	}

	task, err := c.api.AddTask(ctx, chapter, options["phase"], strings.Join(positional, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	scope := "global"
	if task.ChapterOrdinal != nil {
		scope = "chapter " + strconv.Itoa(*task.ChapterOrdinal)
	} else if task.Phase != "" {
		scope = task.Phase
	}
	c.app.printf("Added task %s (%s): %s\n", task.ID, scope, task.Description)
	return nil
}

func (c *TaskCommand) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("task toggle", "task toggle <id>")
	}

	task, err := c.api.ToggleTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	c.app.printf("%s %s %s\n", task.Checkbox(), task.ID, task.Description)
	return nil
}

func (c *TaskCommand) list(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "chapter", "global", "open")
	if len(positional) > 0 {
		return usageError("task list", "task list [chapter=<ordinal>] [global=true] [open=true]")
	}

	var filter api.TaskFilter
	if raw, ok := options["chapter"]; ok {
		ordinal, err := parseOrdinal(raw)
		if err != nil {
			return err
		}
		filter.Chapter = &ordinal
	}
	var err error
	if filter.GlobalOnly, err = optionBool(options, "global"); err != nil {
		return err
	}
	if filter.OpenOnly, err = optionBool(options, "open"); err != nil {
		return err
	}
	if filter.Chapter != nil && filter.GlobalOnly {
		return errors.NewInvalidArgumentError("global", "true", "cannot combine chapter and global filters")
	}

	tasks, err := c.api.ListTasks(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}

	s := c.app.styles()
	for _, task := range tasks {
		scope := "global"
		if task.ChapterOrdinal != nil {
			scope = "ch " + strconv.Itoa(*task.ChapterOrdinal)
		} else if task.Phase != "" {
			scope = task.Phase
		}
		c.app.printf("%s %s %s %s\n", task.Checkbox(), s.Muted(task.ID), s.Accent("["+scope+"]"), task.Description)
	}
	return nil
}
