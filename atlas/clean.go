package atlas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// RemoveStale deletes the output of an earlier run for name in dir: the
// "<name>.atlas" description and the page images "<name>.png",
// "<name>2.png", ... up to the first missing page. It returns the paths
// it removed.
func RemoveStale(dir, name string) ([]string, error) {
	var removed []string

	remove := func(path string) (bool, error) {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, path)
			return true, nil
		case errors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return false, err
		}
	}

	if _, err := remove(filepath.Join(dir, name+".atlas")); err != nil {
		return removed, err
	}
	for page := 0; ; page++ {
		ok, err := remove(filepath.Join(dir, PageFileName(name, page)))
		if err != nil {
			return removed, err
		}
		if !ok {
			return removed, nil
		}
	}
}
