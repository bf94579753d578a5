package files

import "errors"

var (
	// ErrNotFoundOrUnreadable indicates a path is missing or cannot be read by the current process
	ErrNotFoundOrUnreadable = errors.New("path not found or unreadable")

	// ErrFilesystem indicates a directory could not be removed, created or read
	ErrFilesystem = errors.New("filesystem error")
)
