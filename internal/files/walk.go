package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/iter"
)

// ListRecursive returns the absolute path of every regular file below startDir.
// Subdirectories are listed concurrently; the result keeps directory entry order,
// so a directory's files appear where the directory itself was encountered.
func ListRecursive(ctx context.Context, startDir string) ([]string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrFilesystem, startDir, err)
	}
	return listDir(ctx, absDir)
}

func listDir(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %s: %w", ErrFilesystem, dir, err)
	}

	nested, err := iter.MapErr(entries, func(entry *os.DirEntry) ([]string, error) {
		full := filepath.Join(dir, (*entry).Name())
		switch {
		case (*entry).IsDir():
			return listDir(ctx, full)
		case (*entry).Type().IsRegular():
			return []string{full}, nil
		default:
			// symlinks, sockets and devices are not part of an extracted tree
			return nil, nil
		}
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for _, paths := range nested {
		files = append(files, paths...)
	}
	return files, nil
}
