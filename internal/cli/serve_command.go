package cli

import (
	"context"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/server"
)

// ServeCommand runs the HTTP server until the context is cancelled
type ServeCommand struct {
	app *App
	api api.API
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app, api: app.api}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	positional, options := parseArgs(args, "addr")
	if len(positional) > 0 {
		return usageError("serve", "serve [addr=<host:port>]")
	}

	addr := c.app.config.Server.Addr
	if raw, ok := options["addr"]; ok && raw != "" {
		addr = raw
	}

	srv := server.New(c.api, server.Options{
		Addr:           addr,
		RequestTimeout: c.app.config.Database.QueryTimeout,
		DateFormat:     c.app.config.Display.DateFormat,
	})
	c.app.printf("Serving progress on http://%s (Ctrl+C to stop)\n", addr)
	return srv.Run(ctx)
}
