package main

import (
	"context"
	"fmt"
	"os"

	"manuscript-tracker/internal/cli"
	"manuscript-tracker/internal/config"
)

func main() {
	// Configuration and the repository are resolved per command, after
	// flags are parsed
	root := cli.NewRootCommand(config.NewLoader())

	if err := root.Execute(context.Background()); err != nil {
		eh := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %s\n", eh.Message(err))
		os.Exit(eh.ExitCode(err))
	}
}
