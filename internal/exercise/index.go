package exercise

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/pygym/pygym/internal/errors"
)

// ignoredDirs are directory names excluded from discovery.
var ignoredDirs = map[string]struct{}{
	"__pycache__": {},
	".git":        {},
}

// ignoredFiles are file names excluded from discovery (OS metadata junk).
var ignoredFiles = map[string]struct{}{
	".DS_Store": {},
	"Thumbs.db": {},
}

// Discover enumerates all exercise source files under root, recursively,
// returning absolute paths in stable lexicographic order. Only files with
// the .py extension are considered; ignored directories are not descended
// into. A missing root or an empty tree yields an empty, non-error result:
// zero exercises is a valid state.
//
// Parameters:
//   - root: The exercises root directory.
//
// Returns:
//   - []string: Discovered exercise paths in canonical order.
//   - error: A wrapped I/O error for faults other than a missing root.
func Discover(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := ignoredDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, skip := ignoredFiles[d.Name()]; skip {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".py") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapError(err, "discovering exercises under %s", root)
	}

	sort.Strings(paths)
	return paths, nil
}
