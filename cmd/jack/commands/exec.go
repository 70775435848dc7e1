package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jack/internal/printer"
)

type ExecCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	lines []string
}

// NewExecCommand returns the exec command.
func NewExecCommand(rootCmd *RootCommand, app *kingpin.Application) *ExecCommand {
	c := &ExecCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("exec", "Run one or more command lines, e.g. exec 'todo read book' 'list'.")
	c.Cmd.Arg("line", "Command line to run, in order.").Required().StringsVar(&c.lines)

	return c
}

func (c ExecCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExecCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p := printer.NewTablePrinter(c.rootCmd.Stdout, c.rootCmd.NoColor)
	sess, err := newSession(ctx, store, p, c.rootCmd.Logger)
	if err != nil {
		return err
	}

	for _, line := range c.lines {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		exit, err := sess.handle(ctx, line)
		if err != nil {
			return fmt.Errorf("could not print result: %w", err)
		}
		if exit {
			break
		}
	}

	return nil
}
