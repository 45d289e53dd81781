package merge

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Entry is a filesystem entry found under the root.
type Entry struct {
	Path string      // absolute path
	Rel  string      // slash-separated path relative to the root
	Type fs.FileMode // type bits from the directory listing
}

// ScanDirectory returns every entry below root, recursively. Symbolic links
// are reported but never descended into. Unreadable subdirectories are
// collected in the returned error slice and do not stop the walk; only a
// failure on root itself is returned as err.
func ScanDirectory(root string) ([]Entry, []error, error) {
	var (
		entries []Entry
		skipped []error
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("relative path for %s: %w", path, err))
			return nil
		}
		entries = append(entries, Entry{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Type: d.Type(),
		})
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("reading directory %s: %w", root, err)
	}
	return entries, skipped, nil
}
