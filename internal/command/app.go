// Package command defines the handlekit command line interface.
package command

import (
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/handlekit/pkg/clipboard"
	"github.com/dmitrymomot/handlekit/pkg/config"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type runtime struct {
	clipboard clipboard.Writer
	now       func() time.Time
}

// Option configures New.
type Option func(*cli.App, *runtime)

// WithClipboard replaces the OS clipboard.
func WithClipboard(w clipboard.Writer) Option {
	return func(_ *cli.App, rt *runtime) {
		if w != nil {
			rt.clipboard = w
		}
	}
}

// WithClock replaces the salt source used when --salt is not given.
func WithClock(now func() time.Time) Option {
	return func(_ *cli.App, rt *runtime) {
		if now != nil {
			rt.now = now
		}
	}
}

// WithOutput redirects standard output and error.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(app *cli.App, _ *runtime) {
		if stdout != nil {
			app.Writer = stdout
		}
		if stderr != nil {
			app.ErrWriter = stderr
		}
	}
}

// New builds the handlekit application.
func New(opts ...Option) *cli.App {
	rt := &runtime{clipboard: clipboard.System(), now: time.Now}
	app := &cli.App{
		Name:      "handlekit",
		Usage:     "Suggest social media handles for a name",
		Version:   Version,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "load environment from `FILE` before running (repeatable, later files win)",
			},
		},
		Before: func(c *cli.Context) error {
			if files := c.StringSlice("env-file"); len(files) > 0 {
				return config.LoadEnv(files...)
			}
			return nil
		},
	}
	for _, opt := range opts {
		opt(app, rt)
	}

	app.Commands = []*cli.Command{
		suggestCommand(rt),
		platformsCommand(),
		serveCommand(),
	}
	return app
}
