package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateFilePath returns the path of the rules file for a state. The state
// name is lowercased; no validation is performed.
func (s Settings) StateFilePath(state string) string {
	return filepath.Join(s.DataDir, strings.ToLower(state)+".json")
}

// LogDir returns the directory holding the log file.
func (s Settings) LogDir() string {
	return filepath.Dir(s.Log.File)
}

// CreateDirectories creates the data, reports, and log directories. Existing
// directories are left as they are.
func (s Settings) CreateDirectories() error {
	for _, dir := range []string{s.DataDir, s.ReportsDir, s.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
