// Command codepad edits and runs code against a codepad execution service.
//
// Subcommands:
//
//	repl       interactive editor in the terminal
//	run        run a file once and print its output
//	mcp        serve the editor as MCP tools over stdio
//	problems   list judge problems
//	problem    show one problem with its sample cases
//	submit     submit a solution to the judge
//	languages  list supported languages
//
// Configuration is read from --config, CODEPAD_CONFIG, ./codepad.yaml or
// $XDG_CONFIG_HOME/codepad/config.yaml, then CODEPAD_* environment
// variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
