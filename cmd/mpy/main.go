// Package main is the entry point for mpy.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/cmd/mpy/commands"
	"go.trai.ch/mpy/internal/app"
	"go.trai.ch/mpy/internal/core/domain"
	_ "go.trai.ch/mpy/internal/wiring"
)

// ComponentProvider resolves the application components and returns a
// cleanup function for them.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// jsonSwitcher is implemented by loggers that can change to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, resolveComponents))
}

func resolveComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

// run executes the command line in args and returns the process exit code.
// Interrupts cancel ctx so that running tools are stopped.
func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is part of the components, so report directly.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	var cliOpts []commands.Option
	if sw, ok := components.Logger.(jsonSwitcher); ok {
		cliOpts = append(cliOpts, commands.WithJSONSwitch(sw.SetJSON))
	}
	cli := commands.New(components.App, cliOpts...)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	err = cli.Execute(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrPipelineFailed):
		// Per-file failures were already reported by the run summary.
		return 1
	default:
		components.Logger.Error(err)
		return 1
	}
}
