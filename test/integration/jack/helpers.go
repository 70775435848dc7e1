package jack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/jack/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "jack"
	}

	// go test changes the CWD to the test package directory, relative paths
	// would not point to the built binary.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("JACK_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("jack binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "JACK_INTEGRATION"
		envBinary     = "JACK_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunSession runs an interactive session feeding the input lines.
func RunSession(ctx context.Context, config Config, dataDir, storage, input string) (stdout, stderr []byte, err error) {
	args := []string{"--no-color", "--data-dir", dataDir, "--storage", storage, "repl"}
	return testutils.RunJack(ctx, nil, config.Binary, args, input, true)
}

// RunExport prints the stored tasks as records.
func RunExport(ctx context.Context, config Config, dataDir, storage string) (stdout, stderr []byte, err error) {
	args := []string{"--data-dir", dataDir, "--storage", storage, "export"}
	return testutils.RunJack(ctx, nil, config.Binary, args, "", true)
}
