// Package library finds the tracks a session plays and resolves their
// metadata through a persistent cache.
package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/tags"
)

// Discover walks root and returns every music file under it, sorted.
// Hidden directories and files (leading dot) are skipped, which also
// drops macOS "._" resource forks. Unreadable subdirectories are skipped;
// a missing root is an error.
func Discover(ctx context.Context, fsys afero.Fs, root string) ([]string, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "source %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("source %s is not a directory", root)
	}

	var files []string
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// Keep scanning past unreadable entries
		if walkErr != nil {
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		hidden := path != root && strings.HasPrefix(info.Name(), ".")
		if info.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !tags.IsMusicFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
