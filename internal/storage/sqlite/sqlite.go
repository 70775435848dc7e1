package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
	// TimeNow is used to stamp saved rows, defaults to time.Now.
	TimeNow func() time.Time
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	return nil
}

// Repository is a SQLite implementation of storage.Repository. Tasks are
// kept in a single table ordered by their list position.
type Repository struct {
	db      *sql.DB
	logger  log.Logger
	timeNow func() time.Time
}

// NewRepository creates a new SQLite repository, creating the database and
// applying the schema migrations when required.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{
		db:      db,
		logger:  cfg.Logger,
		timeNow: cfg.TimeNow,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// LoadTasks returns the stored tasks in list order. Rows that don't make a
// valid task are skipped.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT
			id, kind, done, description,
			by_date, from_text, to_text
		FROM tasks
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		id, task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		if err := task.Validate(); err != nil {
			r.logger.Warningf("Skipping corrupted task %s: %s", id, err)
			continue
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	r.logger.Debugf("Loaded %d tasks from repository", len(tasks))
	return tasks, nil
}

// SaveTasks replaces all the stored tasks in a single transaction.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid task %d: %w", i+1, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not delete tasks: %w", err)
	}

	insertQuery := `
		INSERT INTO tasks (
			id, position, kind, done, description,
			by_date, from_text, to_text,
			saved_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	now := r.timeNow().UTC().Unix()
	for i, t := range tasks {
		var byDate, fromText, toText sql.NullString
		if t.Deadline != nil {
			byDate = sql.NullString{String: t.Deadline.By.Format(model.ISODateLayout), Valid: true}
		}
		if t.Event != nil {
			fromText = sql.NullString{String: t.Event.From, Valid: true}
			toText = sql.NullString{String: t.Event.To, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			ulid.Make().String(),
			i,
			string(t.Kind),
			t.Done,
			t.Description,
			byDate,
			fromText,
			toText,
			now,
		)
		if err != nil {
			return fmt.Errorf("could not insert task %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved %d tasks in repository", len(tasks))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (id string, task model.Task, err error) {
	var kind, description string
	var done bool
	var byDate, fromText, toText sql.NullString

	err = s.Scan(&id, &kind, &done, &description, &byDate, &fromText, &toText)
	if err != nil {
		return "", model.Task{}, err
	}

	task = model.Task{
		Kind:        model.TaskKind(kind),
		Description: description,
		Done:        done,
	}

	if byDate.Valid {
		by, err := time.Parse(model.ISODateLayout, byDate.String)
		if err == nil {
			task.Deadline = &model.DeadlineInfo{By: by}
		} else {
			task.Deadline = &model.DeadlineInfo{}
		}
	}

	if fromText.Valid || toText.Valid {
		task.Event = &model.EventInfo{From: fromText.String, To: toText.String}
	}

	return id, task, nil
}
