package importers

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDataFound indicates the extracted archive holds no .json documents
	ErrNoDataFound = errors.New("no .json files found in extraction result")

	// ErrNoValidData indicates .json documents were found but none yielded book records
	ErrNoValidData = errors.New("json read but no valid book data")
)

// StageError records which pipeline stage failed. It unwraps to the cause so
// errors.Is matches the sentinel errors of the failing package.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage.Description(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
