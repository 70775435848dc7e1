package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/slok/jack/internal/dates"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage"
	"github.com/slok/jack/internal/tasklist"
)

// ServiceConfig is the configuration for the dispatch service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
	// TimeNow returns the current time, its calendar day is the reference for
	// relative dates. Defaults to time.Now.
	TimeNow func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Dispatch"})
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	return nil
}

// Service interprets a single command line against a task list. It doesn't
// keep state between calls, the task list is passed on every request.
type Service struct {
	repo    storage.Repository
	logger  log.Logger
	timeNow func() time.Time
}

// NewService creates a new dispatch service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:    cfg.Repository,
		logger:  cfg.Logger,
		timeNow: cfg.TimeNow,
	}, nil
}

// Request represents the dispatch request parameters.
type Request struct {
	// Line is the raw input line.
	Line string
	// Tasks is the session task list, mutating commands change it in place.
	Tasks *tasklist.List
}

// Result is the outcome of a command.
type Result struct {
	// Lines are the output lines to show to the user, empty for empty input.
	Lines []string
	// Exit is true when the user asked to end the session.
	Exit bool
}

type handler func(ctx context.Context, body string, tasks *tasklist.List) (Result, error)

// Run executes the command of the request line.
//
// Errors caused by the input satisfy model.UserError and have a message ready
// to show. Any other failure is wrapped with model.ErrInternal.
func (s *Service) Run(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("Panic while running %q: %v", req.Line, r)
			res, err = Result{}, fmt.Errorf("%w: %v", model.ErrInternal, r)
		}
	}()

	if req.Tasks == nil {
		return Result{}, fmt.Errorf("%w: task list is required", model.ErrInternal)
	}

	cmd, body := splitCommand(req.Line)
	if cmd == "" {
		return Result{}, nil
	}

	handlers := map[string]handler{
		"list":     s.list,
		"bye":      s.bye,
		"mark":     s.mark,
		"unmark":   s.unmark,
		"delete":   s.delete,
		"todo":     s.todo,
		"deadline": s.deadline,
		"event":    s.event,
		"find":     s.find,
	}
	h, ok := handlers[cmd]
	if !ok {
		return Result{}, &model.UnknownCommandError{Input: strings.TrimSpace(req.Line)}
	}

	s.logger.Debugf("Running %q command", cmd)
	res, err = h(ctx, body, req.Tasks)
	if err != nil {
		if model.IsUserError(err) || errors.Is(err, model.ErrInternal) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", model.ErrInternal, err)
	}

	return res, nil
}

// splitCommand splits the trimmed line at the first whitespace, the command is
// lower cased and the body keeps its case.
func splitCommand(line string) (cmd, body string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), line[i+1:]
}

func (s *Service) list(_ context.Context, _ string, tasks *tasklist.List) (Result, error) {
	snap := tasks.Snapshot()
	if len(snap) == 0 {
		return Result{Lines: []string{"Your task list is empty."}}, nil
	}

	lines := []string{"Here are the tasks in your list:"}
	for i, t := range snap {
		lines = append(lines, fmt.Sprintf("%d.%s", i+1, t.Render()))
	}
	return Result{Lines: lines}, nil
}

func (s *Service) bye(_ context.Context, _ string, _ *tasklist.List) (Result, error) {
	return Result{Lines: []string{"Bye. Hope to see you again soon!"}, Exit: true}, nil
}

func (s *Service) mark(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	t, err := getTask(tasks, body, "mark")
	if err != nil {
		return Result{}, err
	}

	t.MarkDone()
	s.save(ctx, tasks)

	return Result{Lines: []string{
		"Nice! I've marked this task as done:",
		"  " + t.Render(),
		taskCount(tasks.Size()),
	}}, nil
}

func (s *Service) unmark(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	t, err := getTask(tasks, body, "unmark")
	if err != nil {
		return Result{}, err
	}

	t.MarkNotDone()
	s.save(ctx, tasks)

	return Result{Lines: []string{
		"OK, I've marked this task as not done yet:",
		"  " + t.Render(),
		taskCount(tasks.Size()),
	}}, nil
}

func (s *Service) delete(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	i, err := parseIndex(body, "delete")
	if err != nil {
		return Result{}, err
	}

	removed, err := tasks.Remove(i)
	if err != nil {
		return Result{}, withAction(err, "delete")
	}
	s.save(ctx, tasks)

	return Result{Lines: []string{
		"Noted. I've removed this task:",
		"  " + removed.Render(),
		taskCount(tasks.Size()),
	}}, nil
}

func (s *Service) todo(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	if strings.TrimSpace(body) == "" {
		return Result{}, &model.EmptyDescriptionError{What: "todo"}
	}

	t, err := model.NewTodo(body)
	if err != nil {
		return Result{}, err
	}

	return s.add(ctx, t, tasks), nil
}

func (s *Service) deadline(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	if strings.TrimSpace(body) == "" {
		return Result{}, &model.EmptyDescriptionError{What: "deadline"}
	}

	desc, rawBy, ok := strings.Cut(body, "/by")
	if !ok {
		return Result{}, &model.MissingArgumentError{Need: "/by <date>"}
	}
	if strings.TrimSpace(desc) == "" {
		return Result{}, &model.EmptyDescriptionError{What: "deadline"}
	}
	if strings.TrimSpace(rawBy) == "" {
		return Result{}, &model.MissingArgumentError{Need: "/by <date>"}
	}

	by, err := dates.Resolve(rawBy, s.timeNow())
	if err != nil {
		return Result{}, err
	}

	t, err := model.NewDeadline(desc, by)
	if err != nil {
		return Result{}, err
	}

	return s.add(ctx, t, tasks), nil
}

func (s *Service) event(ctx context.Context, body string, tasks *tasklist.List) (Result, error) {
	if strings.TrimSpace(body) == "" {
		return Result{}, &model.EmptyDescriptionError{What: "event"}
	}

	desc, rest, ok := strings.Cut(body, "/from")
	if !ok {
		return Result{}, &model.MissingArgumentError{Need: "/from <start>"}
	}
	from, to, ok := strings.Cut(rest, "/to")
	if !ok {
		return Result{}, &model.MissingArgumentError{Need: "/to <end>"}
	}

	t, err := model.NewEvent(desc, from, to)
	if err != nil {
		return Result{}, err
	}

	return s.add(ctx, t, tasks), nil
}

func (s *Service) find(_ context.Context, body string, tasks *tasklist.List) (Result, error) {
	keyword := strings.TrimSpace(body)
	if keyword == "" {
		return Result{}, &model.EmptyDescriptionError{What: "search keyword"}
	}

	matches := tasks.Find(keyword)
	if len(matches) == 0 {
		return Result{Lines: []string{"No matching tasks found."}}, nil
	}

	lines := []string{"Here are the matching tasks in your list:"}
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("%d.%s", m.Index, m.Task.Render()))
	}
	return Result{Lines: lines}, nil
}

func (s *Service) add(ctx context.Context, t model.Task, tasks *tasklist.List) Result {
	size := tasks.Add(t)
	s.save(ctx, tasks)

	return Result{Lines: []string{
		"Got it. I've added this task:",
		"  " + t.Render(),
		taskCount(size),
	}}
}

// save persists the task list, failures are logged and ignored, the in memory
// list stays authoritative and the next successful save catches up.
func (s *Service) save(ctx context.Context, tasks *tasklist.List) {
	if err := s.repo.SaveTasks(ctx, tasks.Snapshot()); err != nil {
		s.logger.Warningf("Could not save tasks: %s", err)
	}
}

func getTask(tasks *tasklist.List, body, action string) (*model.Task, error) {
	i, err := parseIndex(body, action)
	if err != nil {
		return nil, err
	}

	t, err := tasks.Get(i)
	if err != nil {
		return nil, withAction(err, action)
	}
	return t, nil
}

// parseIndex only parses the number, the range is checked by the task list.
func parseIndex(body, action string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return 0, &model.InvalidIndexError{Action: action}
	}
	return i, nil
}

// withAction names the command on the index errors of the task list.
func withAction(err error, action string) error {
	var ierr *model.InvalidIndexError
	if errors.As(err, &ierr) && ierr.Action == "" {
		return &model.InvalidIndexError{Action: action}
	}
	return err
}

func taskCount(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}
