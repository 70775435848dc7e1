package commands

import (
	"bufio"
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jack/internal/printer"
)

type ReplCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewReplCommand returns the interactive session command.
func NewReplCommand(rootCmd *RootCommand, app *kingpin.Application) *ReplCommand {
	c := &ReplCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("repl", "Start an interactive session (default).").Default()

	return c
}

func (c ReplCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReplCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	store, err := c.rootCmd.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p := printer.NewTablePrinter(c.rootCmd.Stdout, c.rootCmd.NoColor)
	if err := p.PrintWelcome(); err != nil {
		return fmt.Errorf("could not print welcome: %w", err)
	}

	sess, err := newSession(ctx, store, p, logger)
	if err != nil {
		return err
	}

	// Read on a goroutine so a termination signal can end the session while
	// waiting for input.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.rootCmd.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debugf("Session interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				logger.Debugf("End of input")
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("could not read input: %w", err)
					}
				default:
				}
				return nil
			}

			exit, err := sess.handle(ctx, line)
			if err != nil {
				return fmt.Errorf("could not print result: %w", err)
			}
			if exit {
				return nil
			}
		}
	}
}
