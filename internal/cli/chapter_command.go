package cli

import (
	"context"
	"strconv"
	"strings"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/ui"
)

const chapterUsage = "chapter add <ordinal> <title> [target=<words>|variable] | list | " +
	"status <ordinal> <status> | words <ordinal> <count> | target <ordinal> <words|variable> | rename <ordinal> <title>"

// ChapterCommand handles the chapter command and its actions
type ChapterCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewChapterCommand creates a new chapter command handler
func NewChapterCommand(app *App) *ChapterCommand {
	return &ChapterCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the chapter command
func (c *ChapterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("chapter", chapterUsage)
	}

	action, rest := args[0], args[1:]
	switch action {
	case "add":
		return c.add(ctx, rest)
	case "list", "ls":
		return c.list(ctx)
	case "status":
		return c.setStatus(ctx, rest)
	case "words":
		return c.setWords(ctx, rest)
	case "target":
		return c.setTarget(ctx, rest)
	case "rename":
		return c.rename(ctx, rest)
	default:
		return usageError("chapter "+action, chapterUsage)
	}
}

func (c *ChapterCommand) add(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "target")
	if len(positional) < 2 {
		return usageError("chapter add", "chapter add <ordinal> <title> [target=<words>|variable]")
	}
	ordinal, err := parseOrdinal(positional[0])
	if err != nil {
		return err
	}

	target := domain.VariableTarget()
	if raw, ok := options["target"]; ok {
		target, err = domain.ParseWordTarget(raw)
		if err != nil {
			return errors.NewInvalidArgumentError("target", raw, err.Error())
		}
	}

	chapter, err := c.api.AddChapter(ctx, ordinal, strings.Join(positional[1:], " "), target)
	if err != nil {
		return c.errorHandler.Handle("add chapter", err)
	}
	c.app.printf("Added chapter %s (target: %s)\n", chapter.Label(), chapter.Target)
	return nil
}

func (c *ChapterCommand) list(ctx context.Context) error {
	chapters, err := c.api.ListChapters(ctx)
	if err != nil {
		return c.errorHandler.Handle("list chapters", err)
	}
	if len(chapters) == 0 {
		c.app.printf("No chapters found\n")
		return nil
	}

	s := c.app.styles()
	for _, chapter := range chapters {
		c.app.printf("%s %s %d/%s\n",
			ui.PadRight(chapter.Label(), 30), ui.PadRight(s.Status(chapter.Status), 18), chapter.WordCount, chapter.Target)
	}
	return nil
}

func (c *ChapterCommand) setStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("chapter status", "chapter status <ordinal> <status>")
	}
	ordinal, err := parseOrdinal(args[0])
	if err != nil {
		return err
	}
	raw := strings.Join(args[1:], " ")
	status, err := domain.ParseChapterStatus(raw)
	if err != nil {
		return errors.NewInvalidArgumentError("status", raw, err.Error())
	}

	update, err := c.api.SetChapterStatus(ctx, ordinal, status)
	if err != nil {
		return c.errorHandler.Handle("set chapter status", err)
	}
	if !update.Changed {
		c.app.printf("Chapter %s is already %s\n", update.Chapter.Label(), status.Label())
		return nil
	}
	if update.Regressed() {
		c.app.warnf("chapter %s moved back from %s to %s",
			update.Chapter.Label(), update.Previous.Status.Label(), update.Chapter.Status.Label())
	}
	c.app.printf("Chapter %s: %s -> %s\n",
		update.Chapter.Label(), update.Previous.Status.Label(), update.Chapter.Status.Label())
	return nil
}

func (c *ChapterCommand) setWords(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("chapter words", "chapter words <ordinal> <count>")
	}
	ordinal, err := parseOrdinal(args[0])
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(strings.ReplaceAll(args[1], ",", ""))
	if err != nil {
		return errors.NewInvalidArgumentError("count", args[1], "word count must be an integer")
	}

	update, err := c.api.SetWordCount(ctx, ordinal, count)
	if err != nil {
		return c.errorHandler.Handle("set word count", err)
	}
	c.app.printf("Chapter %s: %d words (target: %s)\n",
		update.Chapter.Label(), update.Chapter.WordCount, update.Chapter.Target)
	return nil
}

func (c *ChapterCommand) setTarget(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("chapter target", "chapter target <ordinal> <words|variable>")
	}
	ordinal, err := parseOrdinal(args[0])
	if err != nil {
		return err
	}
	target, err := domain.ParseWordTarget(args[1])
	if err != nil {
		return errors.NewInvalidArgumentError("target", args[1], err.Error())
	}

	update, err := c.api.SetWordTarget(ctx, ordinal, target)
	if err != nil {
		return c.errorHandler.Handle("set word target", err)
	}
	c.app.printf("Chapter %s: target %s\n", update.Chapter.Label(), update.Chapter.Target)
	return nil
}

func (c *ChapterCommand) rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("chapter rename", "chapter rename <ordinal> <title>")
	}
	ordinal, err := parseOrdinal(args[0])
	if err != nil {
		return err
	}

	update, err := c.api.RenameChapter(ctx, ordinal, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("rename chapter", err)
	}
	c.app.printf("Renamed chapter %d: %q -> %q\n", ordinal, update.Previous.Title, update.Chapter.Title)
	return nil
}
