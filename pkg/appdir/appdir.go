// Package appdir locates the per-user directory holding idea-go's log
// database and default configuration.
package appdir

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the application directory when set.
const EnvHome = "IDEA_HOME"

// AppDir returns $IDEA_HOME, or ~/.idea-go, or ./.idea-go when no home
// directory can be determined.
func AppDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".idea-go"
	}
	return filepath.Join(home, ".idea-go")
}

// Resolve returns name unchanged when it is absolute, and otherwise joined to
// the application directory.
func Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(AppDir(), name)
}
