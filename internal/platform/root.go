package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/journal/pkg/core"
)

// ErrRootNotFound is returned by FindRoot when no journal directory exists
// above the start directory.
var ErrRootNotFound = errors.New("journal root not found")

// FindRoot looks upwards from startDir for a journal directory. Indicators
// are a journal.yaml file, a .journal directory or an entries slot file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFile) || hasFile(dir, ".journal") || hasFile(dir, core.EntriesKey+".json") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
