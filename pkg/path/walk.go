package path

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var SkipDirs = []string{"node_modules"}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isPartial reports whether the name marks a file or directory that is only ever included
// from other documents and must never become a page on its own.
func isPartial(name string) bool {
	return strings.HasPrefix(name, "_")
}

// GetAllFilesRecursive returns the paths of every file under root that ends with one of the given
// suffixes. Paths are relative to root, slash-separated and sorted. Directories listed in excludeDirs
// are skipped together with everything below them.
func GetAllFilesRecursive(fs afero.Fs, root string, suffixes []string, excludeDirs ...string) ([]string, error) {
	excluded := make([]string, 0, len(excludeDirs))
	for _, dir := range excludeDirs {
		excluded = append(excluded, filepath.Clean(dir))
	}

	paths := make([]string, 0)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path == root {
				return nil
			}

			if slices.Contains(SkipDirs, info.Name()) || isHidden(info.Name()) || isPartial(info.Name()) {
				return filepath.SkipDir
			}

			if slices.Contains(excluded, filepath.Clean(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if isPartial(info.Name()) {
			return nil
		}

		for _, s := range suffixes {
			if !strings.HasSuffix(strings.ToLower(info.Name()), s) {
				continue
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return errors.Wrapf(err, "failed to get relative path for %s", path)
			}

			paths = append(paths, filepath.ToSlash(rel))
			break
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error walking directory")
	}

	sort.Strings(paths)
	return paths, nil
}

// FindProjectRoot walks up from the given path until it finds a directory that contains one of the
// given definition files.
func FindProjectRoot(fs afero.Fs, start string, definitionFiles []string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "failed to convert path to absolute path")
	}

	for {
		for _, definition := range definitionFiles {
			exists, err := afero.Exists(fs, filepath.Join(current, definition))
			if err == nil && exists {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", errors.New("cannot find a site definition file in the given path or any of its parents, are you sure this is a docsite project?")
}
