// Package backend opens the task repository selected by the flags and the
// optional YAML config.
package backend

import (
	"context"
	"fmt"
	"os"

	"github.com/slok/jack/internal/conventions"
	"github.com/slok/jack/internal/log"
	"github.com/slok/jack/internal/model"
	"github.com/slok/jack/internal/storage"
	"github.com/slok/jack/internal/storage/file"
	storageio "github.com/slok/jack/internal/storage/io"
	"github.com/slok/jack/internal/storage/sqlite"
	utilsfile "github.com/slok/jack/internal/utils/file"
)

// Config is the configuration to open a store.
type Config struct {
	// Backend is used when the config file doesn't select one. Defaults to file.
	Backend model.StorageBackend
	// DataDir holds the default store files.
	DataDir string
	// ConfigPath is an optional YAML config file, when set it must exist.
	ConfigPath string
	Logger     log.Logger
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.Backend == "" {
		c.Backend = model.StorageBackendFile
	}
	if c.Backend != model.StorageBackendFile && c.Backend != model.StorageBackendSQLite {
		return fmt.Errorf("unknown storage backend %q: %w", c.Backend, model.ErrNotValid)
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Store is an opened task repository.
type Store struct {
	storage.Repository
	Backend model.StorageBackend
	Path    string
	closeFn func() error
}

// Close releases the store resources.
func (s *Store) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// Open resolves the storage configuration and opens the repository.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dataDir, err := utilsfile.ExpandPath(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	storageCfg, err := resolve(ctx, cfg.Backend, dataDir, cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	switch {
	case storageCfg.SQLite != nil:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: storageCfg.SQLite.Path,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create sqlite repository: %w", err)
		}
		return &Store{Repository: repo, Backend: model.StorageBackendSQLite, Path: storageCfg.SQLite.Path, closeFn: repo.Close}, nil

	default:
		repo, err := file.NewRepository(file.RepositoryConfig{
			Path:   storageCfg.File.Path,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create file repository: %w", err)
		}
		return &Store{Repository: repo, Backend: model.StorageBackendFile, Path: storageCfg.File.Path}, nil
	}
}

// resolve returns a storage config with exactly one backend set and absolute
// paths. The config file takes precedence over the backend flag.
func resolve(ctx context.Context, backend model.StorageBackend, dataDir, configPath string) (model.StorageConfig, error) {
	if configPath != "" {
		path, err := utilsfile.ExpandPath(configPath)
		if err != nil {
			return model.StorageConfig{}, fmt.Errorf("invalid config path: %w", err)
		}

		repo := storageio.NewConfigYAMLRepository(os.DirFS("/"))
		appCfg, err := repo.GetConfig(ctx, path[1:])
		if err != nil {
			return model.StorageConfig{}, fmt.Errorf("could not load config: %w", err)
		}

		sc := appCfg.Storage
		switch {
		case sc.File != nil:
			p, err := utilsfile.ExpandPath(sc.File.Path)
			if err != nil {
				return model.StorageConfig{}, fmt.Errorf("invalid file storage path: %w", err)
			}
			return model.StorageConfig{File: &model.FileStorageConfig{Path: p}}, nil
		case sc.SQLite != nil:
			p, err := utilsfile.ExpandPath(sc.SQLite.Path)
			if err != nil {
				return model.StorageConfig{}, fmt.Errorf("invalid sqlite storage path: %w", err)
			}
			return model.StorageConfig{SQLite: &model.SQLiteStorageConfig{Path: p}}, nil
		}
	}

	if backend == model.StorageBackendSQLite {
		return model.StorageConfig{SQLite: &model.SQLiteStorageConfig{Path: conventions.DBFilePath(dataDir)}}, nil
	}
	return model.StorageConfig{File: &model.FileStorageConfig{Path: conventions.TasksFilePath(dataDir)}}, nil
}
