// Package file provides file path helpers.
package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"k8s.io/client-go/util/homedir"
)

// ExpandPath expands a leading "~" to the user home directory and returns the
// cleaned absolute path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home := homedir.HomeDir()
		if home == "" {
			return "", fmt.Errorf("could not get user home dir")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve %q: %w", path, err)
	}

	return abs, nil
}
