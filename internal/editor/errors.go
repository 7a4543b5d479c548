package editor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSelectionRequired is returned by Update and Delete when no row is
	// selected. Nothing is sent to the store.
	ErrSelectionRequired = errors.New("select a student first")

	// ErrRowNotFound is returned by SelectID when the displayed list has no
	// row with that id.
	ErrRowNotFound = errors.New("no such row in the list")
)

// ValidationError reports the required fields that were empty. The
// editor's text is left untouched so the user can correct it.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, " and ") + requiredSuffix(len(e.Fields))
}

func requiredSuffix(n int) string {
	if n > 1 {
		return " are required!"
	}
	return " is required!"
}

// PersistenceFault wraps a store error under the surface policy.
type PersistenceFault struct {
	Op  string
	Err error
}

func (e *PersistenceFault) Error() string {
	return fmt.Sprintf("could not %s: %v", e.Op, e.Err)
}

func (e *PersistenceFault) Unwrap() error {
	return e.Err
}
