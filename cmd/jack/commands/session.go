package commands

import (
	"context"
	"fmt"

	"github.com/slok/jack/internal/app/dispatch"
	"github.com/slok/jack/internal/app/load"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/printer"
	"github.com/slok/jack/internal/storage"
	"github.com/slok/jack/internal/tasklist"
)

// internalErrorMsg is shown instead of the details of unexpected failures.
const internalErrorMsg = "Something went wrong internally."

// session runs command lines against a loaded task list and prints the
// results, shared by the interactive and the scripted commands.
type session struct {
	svc     *dispatch.Service
	tasks   *tasklist.List
	printer printer.Printer
	logger  log.Logger
}

func newSession(ctx context.Context, repo storage.Repository, p printer.Printer, logger log.Logger) (*session, error) {
	loader, err := load.NewService(load.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("could not create load service: %w", err)
	}

	svc, err := dispatch.NewService(dispatch.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("could not create dispatch service: %w", err)
	}

	res, err := loader.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load tasks: %w", err)
	}

	if res.Notice != "" {
		if err := p.PrintBlock([]string{res.Notice}); err != nil {
			return nil, err
		}
	}

	return &session{
		svc:     svc,
		tasks:   res.Tasks,
		printer: p,
		logger:  logger,
	}, nil
}

// handle runs a line and prints its result. It returns true when the session
// should end. Command errors are printed, only printing errors are returned.
func (s *session) handle(ctx context.Context, line string) (exit bool, err error) {
	res, err := s.svc.Run(ctx, dispatch.Request{Line: line, Tasks: s.tasks})
	if err != nil {
		if model.IsUserError(err) {
			return false, s.printer.PrintError(err.Error())
		}

		// Internal faults don't end the session, the details only go to the log.
		s.logger.Errorf("Command %q failed: %s", line, err)
		return false, s.printer.PrintError(internalErrorMsg)
	}

	if len(res.Lines) > 0 {
		if err := s.printer.PrintBlock(res.Lines); err != nil {
			return false, err
		}
	}

	return res.Exit, nil
}
