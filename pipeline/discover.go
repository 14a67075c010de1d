package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/wetclean"
)

// Discover returns the archive files in dir matching pattern, sorted by name.
// A positive limit keeps only the first limit files.
func Discover(dir, pattern string, limit int) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wetclean.Errorf(wetclean.ENOTFOUND, "input directory not found: %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, wetclean.Errorf(wetclean.EINVALID, "input path is not a directory: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, wetclean.Errorf(wetclean.EINVALID, "invalid input pattern %q", pattern)
	}

	files := matches[:0]
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
