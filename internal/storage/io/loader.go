package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/jack/internal/model"
)

// ConfigYAMLRepository loads the application configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a configuration from a YAML file and returns a validated domain model.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Config{}, ctx.Err()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return model.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// Config represents the YAML structure of the application configuration.
//
//	storage:
//	  file:
//	    path: ~/.jack/jack.txt
type Config struct {
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig represents the YAML structure for the storage configuration.
type StorageConfig struct {
	File   *FileStorageConfig   `yaml:"file,omitempty"`
	SQLite *SQLiteStorageConfig `yaml:"sqlite,omitempty"`
}

// FileStorageConfig represents the YAML structure for the flat file storage.
type FileStorageConfig struct {
	Path string `yaml:"path"`
}

// SQLiteStorageConfig represents the YAML structure for the SQLite storage.
type SQLiteStorageConfig struct {
	Path string `yaml:"path"`
}

func (c Config) validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (c StorageConfig) validate() error {
	// No storage section means the default storage.
	if c.File == nil && c.SQLite == nil {
		return nil
	}
	if c.File != nil && c.SQLite != nil {
		return fmt.Errorf("only one storage can be specified at a time")
	}

	if c.File != nil && c.File.Path == "" {
		return fmt.Errorf("file storage path is required")
	}
	if c.SQLite != nil && c.SQLite.Path == "" {
		return fmt.Errorf("sqlite storage path is required")
	}

	return nil
}

func (c Config) toModel() model.Config {
	cfg := model.Config{}

	if c.Storage.File != nil {
		cfg.Storage.File = &model.FileStorageConfig{Path: c.Storage.File.Path}
	}
	if c.Storage.SQLite != nil {
		cfg.Storage.SQLite = &model.SQLiteStorageConfig{Path: c.Storage.SQLite.Path}
	}

	return cfg
}
