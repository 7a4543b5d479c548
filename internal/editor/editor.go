// Package editor keeps a displayed list of students in step with the
// record store.
//
// All editor state lives in an explicit State value that callers own and
// pass to every handler. Each mutating handler follows the same sequence:
//
//	validate the text -> one store call -> reset the form -> reload the list
//
// so the displayed list is always a fresh snapshot after any action.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-desk/internal/config"
	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"
)

// FaultPolicy decides what happens when the store returns an error.
type FaultPolicy int

const (
	// SurfaceFaults aborts the action and returns a *PersistenceFault. The
	// form, selection and displayed list stay as they were, except that a
	// committed mutation whose reload fails has already reset the form.
	SurfaceFaults FaultPolicy = iota

	// SuppressFaults writes the fault to the operator log and carries on
	// as if the store call had returned normally. A failed reload leaves an
	// empty list.
	SuppressFaults
)

// String returns the config spelling of p.
func (p FaultPolicy) String() string {
	if p == SuppressFaults {
		return config.FaultSuppress
	}
	return config.FaultSurface
}

// ParseFaultPolicy maps the editor.fault_policy config value.
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch s {
	case config.FaultSurface, "":
		return SurfaceFaults, nil
	case config.FaultSuppress:
		return SuppressFaults, nil
	default:
		return SurfaceFaults, fmt.Errorf("unknown fault policy %q", s)
	}
}

// Selection is the id of the selected row. It is a lookup key only; the
// row itself lives in State.Rows and is replaced on every reload.
type Selection struct {
	ID    int64
	Valid bool
}

// State is everything the editor shows: the three input fields, the
// selection and the displayed list.
type State struct {
	Name   string
	Email  string
	Course string

	Selection Selection

	// Rows is replaced wholesale by Reload and never patched in place.
	Rows []types.Student
}

// Reset clears the input fields and the selection. Rows are kept.
func (s *State) Reset() {
	s.Name, s.Email, s.Course = "", "", ""
	s.Selection = Selection{}
}

// Editor turns user actions into store calls.
type Editor struct {
	store    storage.Storage
	log      *slog.Logger
	policy   FaultPolicy
	validate *validator.Validate
}

// New returns an editor over store. Suppressed faults are logged to log.
func New(store storage.Storage, log *slog.Logger, policy FaultPolicy) *Editor {
	return &Editor{
		store:    store,
		log:      log,
		policy:   policy,
		validate: validator.New(),
	}
}

// Add creates a student from the input fields.
func (e *Editor) Add(ctx context.Context, st *State) error {
	if err := e.check(st); err != nil {
		return err
	}

	id, err := e.store.CreateStudent(ctx, st.Name, st.Email, st.Course)
	if err != nil {
		if ferr := e.fault("create", err); ferr != nil {
			return ferr
		}
	} else {
		e.log.Info("student created", slog.Int64("id", id))
	}

	st.Reset()
	return e.Reload(ctx, st)
}

// Update writes the input fields to the selected row. The id always comes
// from the selection, never from the text.
func (e *Editor) Update(ctx context.Context, st *State) error {
	if !st.Selection.Valid {
		return ErrSelectionRequired
	}
	if err := e.check(st); err != nil {
		return err
	}

	candidate := types.Student{
		ID:     st.Selection.ID,
		Name:   st.Name,
		Email:  st.Email,
		Course: st.Course,
	}
	if err := e.store.UpdateStudent(ctx, candidate); err != nil {
		if ferr := e.fault("update", err); ferr != nil {
			return ferr
		}
	} else {
		e.log.Info("student updated", slog.Int64("id", candidate.ID))
	}

	st.Reset()
	return e.Reload(ctx, st)
}

// Delete removes the selected row.
func (e *Editor) Delete(ctx context.Context, st *State) error {
	if !st.Selection.Valid {
		return ErrSelectionRequired
	}

	id := st.Selection.ID
	if err := e.store.DeleteStudent(ctx, id); err != nil {
		if ferr := e.fault("delete", err); ferr != nil {
			return ferr
		}
	} else {
		e.log.Info("student deleted", slog.Int64("id", id))
	}

	st.Reset()
	return e.Reload(ctx, st)
}

// Clear discards the input and the selection without touching the store.
func (e *Editor) Clear(st *State) {
	st.Reset()
}

// Select makes record the selection and copies its fields into the input
// so it can be edited in place.
func (e *Editor) Select(st *State, record types.Student) {
	st.Selection = Selection{ID: record.ID, Valid: true}
	st.Name = record.Name
	st.Email = record.Email
	st.Course = record.Course
}

// SelectID selects the displayed row with the given id.
func (e *Editor) SelectID(st *State, id int64) error {
	for _, row := range st.Rows {
		if row.ID == id {
			e.Select(st, row)
			return nil
		}
	}
	return fmt.Errorf("id %d: %w", id, ErrRowNotFound)
}

// Reload replaces the displayed list with a fresh read of the store. It
// does not touch the input fields or the selection; callers that want a
// clean form call Reset themselves.
func (e *Editor) Reload(ctx context.Context, st *State) error {
	rows, err := e.store.GetStudents(ctx)
	if err != nil {
		if ferr := e.fault("list", err); ferr != nil {
			return ferr
		}
		rows = []types.Student{}
	}

	st.Rows = rows
	return nil
}

// check applies the required-field rules of types.Student to the input.
// Whitespace counts as content.
func (e *Editor) check(st *State) error {
	err := e.validate.Struct(types.Student{Name: st.Name, Email: st.Email, Course: st.Course})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

// fault applies the fault policy. It returns nil when the fault has been
// suppressed and the caller should carry on.
func (e *Editor) fault(op string, err error) error {
	if e.policy == SuppressFaults {
		e.log.Error("persistence fault suppressed",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return nil
	}
	return &PersistenceFault{Op: op, Err: err}
}
