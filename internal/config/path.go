package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDir is the directory under the user's config home holding config.yaml.
const AppDir = "bednights"

// Dir returns $HOME/.config/bednights, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppDir)
}

// ExpandPath expands a leading ~ and $VAR references, so snapshot and log
// paths can be written as "~/.cache/bednights/snapshots.db".
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}
