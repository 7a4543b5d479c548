// Package storage defines the Storage interface: the contract any record
// store backend must satisfy.
//
// The editor, the HTTP handlers and the CLI depend only on this interface,
// so the sqlite, postgres and memory backends are interchangeable, and
// tests can pass a fake.
//
// Backends report every persistence fault as a returned error. They never
// log it and never swallow it; whether a fault is shown to the user or
// only written to the operator log is decided by the caller.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-desk/internal/types"
)

// ErrNotFound is returned by GetStudentByID when no row has the given id.
var ErrNotFound = errors.New("student not found")

// Storage is the record store contract.
type Storage interface {
	// CreateStudent inserts a new row and returns the id the store
	// assigned to it. The inputs are stored as given.
	CreateStudent(ctx context.Context, name, email, course string) (int64, error)

	// GetStudents returns every row in whatever order the engine yields
	// for an unfiltered scan. An empty table gives an empty, non-nil slice.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID fetches a single row, or ErrNotFound.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// UpdateStudent replaces name, email and course of the row with
	// student.ID. An unknown id is a silent no-op.
	UpdateStudent(ctx context.Context, student types.Student) error

	// DeleteStudent removes the row with the given id. An unknown id is a
	// silent no-op.
	DeleteStudent(ctx context.Context, id int64) error

	// Close releases the backend.
	Close() error
}
