package files

import (
	"fmt"
	"os"
)

// CheckReadable returns path unchanged when it exists and is readable.
// File contents are never opened.
func CheckReadable(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFoundOrUnreadable)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFoundOrUnreadable, err)
	}
	if err := accessReadable(path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFoundOrUnreadable, path, err)
	}
	return path, nil
}
