package cli

import (
	"context"
	"strings"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
)

const literatureUsage = "lit add [authors=<authors>] [year=<year>] [priority=high|medium|low] [status=<status>] <title> | " +
	"status <id> <status> | priority <id> <priority> | list [status=<status>] [priority=<priority>]"

// LiteratureCommand handles the reading list
type LiteratureCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewLiteratureCommand creates a new literature command handler
func NewLiteratureCommand(app *App) *LiteratureCommand {
	return &LiteratureCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the lit command
func (c *LiteratureCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("lit", literatureUsage)
	}

	action, rest := args[0], args[1:]
	switch action {
	case "add":
		return c.add(ctx, rest)
	case "status":
		return c.setStatus(ctx, rest)
	case "priority":
		return c.setPriority(ctx, rest)
	case "list", "ls":
		return c.list(ctx, rest)
	default:
		return usageError("lit "+action, literatureUsage)
	}
}

func (c *LiteratureCommand) add(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "authors", "year", "priority", "status")

	item := domain.LiteratureItem{
		Authors: options["authors"],
		Year:    options["year"],
		Title:   strings.Join(positional, " "),
	}
	if raw, ok := options["priority"]; ok {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			return errors.NewInvalidArgumentError("priority", raw, err.Error())
		}
		item.Priority = priority
	}
	if raw, ok := options["status"]; ok {
		status, err := domain.ParseReadingStatus(raw)
		if err != nil {
			return errors.NewInvalidArgumentError("status", raw, err.Error())
		}
		item.Status = status
	}

	created, err := c.api.AddLiterature(ctx, item)
	if err != nil {
		return c.errorHandler.Handle("add literature", err)
	}
	c.app.printf("Added %s: %s [%s, %s]\n",
		created.ID, created.Citation(), created.Priority.Label(), created.Status.Label())
	return nil
}

func (c *LiteratureCommand) setStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("lit status", "lit status <id> <status>")
	}
	raw := strings.Join(args[1:], " ")
	status, err := domain.ParseReadingStatus(raw)
	if err != nil {
		return errors.NewInvalidArgumentError("status", raw, err.Error())
	}

	item, err := c.api.SetReadingStatus(ctx, args[0], status)
	if err != nil {
		return c.errorHandler.Handle("set reading status", err)
	}
	c.app.printf("%s: %s\n", item.ID, item.Status.Label())
	return nil
}

func (c *LiteratureCommand) setPriority(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("lit priority", "lit priority <id> <priority>")
	}
	priority, err := domain.ParsePriority(args[1])
	if err != nil {
		return errors.NewInvalidArgumentError("priority", args[1], err.Error())
	}

	item, err := c.api.SetLiteraturePriority(ctx, args[0], priority)
	if err != nil {
		return c.errorHandler.Handle("set literature priority", err)
	}
	c.app.printf("%s: %s priority\n", item.ID, item.Priority.Label())
	return nil
}

func (c *LiteratureCommand) list(ctx context.Context, args []string) error {
	_, options := parseArgs(args, "status", "priority")

	var filter api.LiteratureFilter
	if raw, ok := options["status"]; ok {
		status, err := domain.ParseReadingStatus(raw)
		if err != nil {
			return errors.NewInvalidArgumentError("status", raw, err.Error())
		}
		filter.Status = &status
	}
	if raw, ok := options["priority"]; ok {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			return errors.NewInvalidArgumentError("priority", raw, err.Error())
		}
		filter.Priority = &priority
	}

	items, err := c.api.ListLiterature(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list literature", err)
	}
	if len(items) == 0 {
		c.app.printf("No literature found\n")
		return nil
	}

	s := c.app.styles()
	for _, item := range items {
		c.app.printf("%s %-6s %-9s %s\n", s.Muted(item.ID), item.Priority.Label(), item.Status.Label(), item.Citation())
	}
	return nil
}
