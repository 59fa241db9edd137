package cli

import (
	"context"
	"strings"
	"time"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
)

const feedbackUsage = "feedback add reviewer=<name> [date=YYYY-MM-DD] [action=<action>] <feedback> | " +
	"done <id> [action] | list [open=true]"

// FeedbackCommand handles the supervisor feedback log
type FeedbackCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewFeedbackCommand creates a new feedback command handler
func NewFeedbackCommand(app *App) *FeedbackCommand {
	return &FeedbackCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the feedback command
func (c *FeedbackCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("feedback", feedbackUsage)
	}

	action, rest := args[0], args[1:]
	switch action {
	case "add":
		return c.add(ctx, rest)
	case "done":
		return c.done(ctx, rest)
	case "list", "ls":
		return c.list(ctx, rest)
	default:
		return usageError("feedback "+action, feedbackUsage)
	}
}

func (c *FeedbackCommand) add(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "reviewer", "date", "action")

	entry := domain.FeedbackEntry{
		Reviewer: options["reviewer"],
		Feedback: strings.Join(positional, " "),
		Action:   options["action"],
	}
	if raw := options["date"]; raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return errors.NewInvalidArgumentError("date", raw, "date must be YYYY-MM-DD")
		}
		entry.Date = date
	}

	created, err := c.api.AddFeedbackEntry(ctx, entry)
	if err != nil {
		return c.errorHandler.Handle("add feedback", err)
	}
	c.app.printf("Logged feedback %s from %s on %s\n",
		created.ID, created.Reviewer, created.Date.Format(c.app.config.Display.DateFormat))
	return nil
}

func (c *FeedbackCommand) done(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("feedback done", "feedback done <id> [action]")
	}

	entry, err := c.api.MarkFeedbackDone(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("close feedback", err)
	}
	c.app.printf("Closed feedback %s", entry.ID)
	if entry.Action != "" {
		c.app.printf(": %s", entry.Action)
	}
	c.app.printf("\n")
	return nil
}

func (c *FeedbackCommand) list(ctx context.Context, args []string) error {
	_, options := parseArgs(args, "open")
	openOnly, err := optionBool(options, "open")
	if err != nil {
		return err
	}

	entries, err := c.api.ListFeedback(ctx, openOnly)
	if err != nil {
		return c.errorHandler.Handle("list feedback", err)
	}
	if len(entries) == 0 {
		c.app.printf("No feedback found\n")
		return nil
	}

	s := c.app.styles()
	for _, entry := range entries {
		mark := "[ ]"
		if entry.Done {
			mark = "[x]"
		}
		c.app.printf("%s %s %s %s: %s\n", mark, s.Muted(entry.ID),
			entry.Date.Format(c.app.config.Display.DateFormat), s.Accent(entry.Reviewer), entry.Feedback)
		if entry.Action != "" {
			c.app.printf("    -> %s\n", entry.Action)
		}
	}
	return nil
}
