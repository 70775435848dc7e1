package model

// StorageBackend is the kind of task storage.
type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQLite StorageBackend = "sqlite"
)

// Config is the application configuration.
type Config struct {
	Storage StorageConfig
}

// StorageConfig selects where the task list is persisted, only one of the
// backends is set.
type StorageConfig struct {
	File   *FileStorageConfig
	SQLite *SQLiteStorageConfig
}

// FileStorageConfig is the configuration of the flat text file storage.
type FileStorageConfig struct {
	Path string
}

// SQLiteStorageConfig is the configuration of the SQLite storage.
type SQLiteStorageConfig struct {
	Path string
}

// Backend returns the selected storage backend.
func (c StorageConfig) Backend() StorageBackend {
	if c.SQLite != nil {
		return StorageBackendSQLite
	}
	return StorageBackendFile
}
