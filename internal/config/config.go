package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "workflow-toolbox"

// DataDir returns the directory holding the toolbox database and settings.
// WORKFLOW_TOOLBOX_HOME overrides the default under the user config dir.
// The directory is created if it does not exist.
func DataDir() (string, error) {
	dir := strings.TrimSpace(os.Getenv("WORKFLOW_TOOLBOX_HOME"))
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve user config dir: %w", err)
		}
		dir = filepath.Join(base, appDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return dir, nil
}

// TrackerDBPath returns the sqlite file path for daily tracker entries.
func TrackerDBPath(dataDir string) string {
	return filepath.Join(dataDir, "tracker.db")
}

// SettingsPath returns the JSON file path for image automator settings.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "automator.json")
}
