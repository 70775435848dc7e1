package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/jack/internal/app/load"
	"github.com/slok/jack/internal/codec"
	"github.com/slok/jack/internal/printer"
)

type ExportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewExportCommand returns the export command.
func NewExportCommand(rootCmd *RootCommand, app *kingpin.Application) *ExportCommand {
	c := &ExportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("export", "Print the stored tasks as text records, e.g. to move them between stores.")

	return c
}

func (c ExportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := load.NewService(load.ServiceConfig{
		Repository: store,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not load tasks: %w", err)
	}
	if res.Notice != "" {
		return fmt.Errorf("could not read the task store at %s", store.Path)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout, true)
	if err := p.PrintRecords(codec.Encode(res.Tasks.Snapshot())); err != nil {
		return fmt.Errorf("could not print records: %w", err)
	}

	return nil
}
