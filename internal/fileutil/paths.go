package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "instruct"

// DataDir returns the per-user directory instruct keeps its state in.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// DefaultsPath returns the path of the saved-answers file.
func DefaultsPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "defaults.json"), nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
