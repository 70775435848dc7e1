package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/jack/internal/conventions"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage/backend"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DataDir    string
	ConfigPath string
	Storage    string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable output and logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("data-dir", "Directory of the task store files.").Envar("JACK_DATA_DIR").Default(defaultDataDir).StringVar(&c.DataDir)
	app.Flag("config", "Optional YAML config file selecting the storage.").StringVar(&c.ConfigPath)
	app.Flag("storage", "Storage backend when the config file doesn't set one.").Default(string(model.StorageBackendFile)).EnumVar(&c.Storage, string(model.StorageBackendFile), string(model.StorageBackendSQLite))

	return c
}

// OpenStore opens the task store selected by the global flags.
func (c RootCommand) OpenStore(ctx context.Context) (*backend.Store, error) {
	store, err := backend.Open(ctx, backend.Config{
		Backend:    model.StorageBackend(c.Storage),
		DataDir:    c.DataDir,
		ConfigPath: c.ConfigPath,
		Logger:     c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open task store: %w", err)
	}

	c.Logger.Debugf("Using %s store at %s", store.Backend, store.Path)
	return store, nil
}
