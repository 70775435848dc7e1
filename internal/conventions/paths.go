package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default jack data directory name (relative to home).
	DefaultDataDir = ".jack"

	// TasksFile is the filename of the plain text task store.
	TasksFile = "jack.txt"
	// DBFile is the filename of the SQLite task store.
	DBFile = "jack.db"
	// ConfigFile is the optional YAML configuration filename.
	ConfigFile = "jack.yaml"
)

// TasksFilePath returns the default text store path inside the data dir.
func TasksFilePath(dataDir string) string {
	return filepath.Join(dataDir, TasksFile)
}

// DBFilePath returns the default SQLite store path inside the data dir.
func DBFilePath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// ConfigFilePath returns the default config path inside the data dir.
func ConfigFilePath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFile)
}
