package filesystem

import (
	"os"
	"path/filepath"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// ToolLocator checks for the tool binary in a directory
type ToolLocator struct {
	path string
}

// NewToolLocator creates a locator for the platform's tool binary under dir
func NewToolLocator(dir string, platform entities.PlatformIdentity) *ToolLocator {
	if dir == "" {
		dir = "."
	}
	return &ToolLocator{path: filepath.Join(dir, platform.ExecutableName(entities.ToolBaseName))}
}

// Path returns the binary path being checked
func (l *ToolLocator) Path() string {
	return l.path
}

// IsPresent reports whether the binary is reachable. Any error counts as absent.
func (l *ToolLocator) IsPresent() bool {
	_, err := os.Stat(l.path)
	return err == nil
}
