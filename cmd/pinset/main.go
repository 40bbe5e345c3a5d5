// Package main is the entry point for the pinset dependency tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/pinset/pinset/cmd/pinset/commands"
	"github.com/pinset/pinset/internal/app"
	_ "github.com/pinset/pinset/internal/wiring"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider commands.ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Interface - CLI with lazy component construction
	cli := commands.New(provider)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 2. Execution
	if err := cli.Execute(ctx); err != nil {
		if log := cli.Logger(); log != nil {
			log.Error(err)
		} else {
			// Components never initialized; write directly to stderr
			_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		}
		return 1
	}
	return 0
}
