package export

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	fsstore "github.com/aretw0/journal/pkg/adapters/fs"
	"github.com/aretw0/journal/pkg/core"
)

// Ext is the extension of exported entries.
const Ext = ".md"

// Result summarizes an export or import run.
type Result struct {
	Count   int
	Skipped []string
}

// Write exports every entry to dir as <id>.md. Existing files are replaced.
func Write(dir string, entries []core.Entry, folders []core.Folder, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	names := make(map[string]string, len(folders))
	for _, f := range folders {
		names[f.ID] = f.Name
	}

	var res Result
	for _, e := range entries {
		if !validFileID(e.ID) {
			logger.Warn("skipping entry with unsafe id", "id", e.ID)
			res.Skipped = append(res.Skipped, e.ID)
			continue
		}

		folderID, _ := e.Folder.ID()
		data, err := MarshalEntry(e, names[folderID])
		if err != nil {
			return res, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if err := fsstore.WriteFileAtomic(filepath.Join(dir, e.ID+Ext), data, 0644); err != nil {
			return res, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		res.Count++
	}

	logger.Debug("export finished", "dir", dir, "written", res.Count)
	return res, nil
}

// Read parses every markdown file matching pattern below dir. Unparseable
// files are skipped and listed in the result.
func Read(dir, pattern string, logger *slog.Logger) ([]core.Entry, Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if pattern == "" {
		pattern = "**/*" + Ext
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, Result{}, fmt.Errorf("invalid pattern %q", pattern)
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var (
		entries []core.Entry
		res     Result
	)
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, res, fmt.Errorf("failed to read %s: %w", name, err)
		}
		e, err := ParseEntry(data)
		if err != nil {
			logger.Warn("skipping file", "file", name, "error", err)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		entries = append(entries, e)
		res.Count++
	}
	return entries, res, nil
}

func validFileID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
