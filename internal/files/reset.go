package files

import (
	"fmt"
	"os"
)

// ResetDir removes dirPath with everything below it, then recreates it
// (including missing parents). On success dirPath is an empty directory.
func ResetDir(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("%w: empty directory path", ErrFilesystem)
	}

	// RemoveAll reports nil for a path that does not exist
	if err := os.RemoveAll(dirPath); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrFilesystem, dirPath, err)
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, dirPath, err)
	}
	return nil
}
