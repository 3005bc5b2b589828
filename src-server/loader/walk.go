package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogbot/src-server/unit"
)

// ensureRoot creates a missing root directory. It reports false when the
// root can't be used, a missing root is created and reported as usable.
func ensureRoot(root string, what string) bool {
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn(what+" directory not found, creating it", "dir", root)
		if err := os.MkdirAll(root, 0o755); err != nil {
			slog.Error("can't create "+what+" directory", "dir", root, "error", err)
			return false
		}
		return true
	case err != nil:
		slog.Error("can't access "+what+" directory", "dir", root, "error", err)
		return false
	case !info.IsDir():
		slog.Error(what+" root is not a directory", "dir", root)
		return false
	}
	return true
}

// findUnitFiles returns every manifest below root at any depth, in lexical
// order. Unreadable subdirectories are reported and skipped.
func findUnitFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Error("can't read directory", "dir", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), unit.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("findUnitFiles: %w", err)
	}
	return files, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
