// Package memory is an in-process storage.Storage. Nothing survives Close.
// It backs the "memory" driver for demos and is the default fake in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"
)

// Memory keeps rows in a map keyed by id. Ids start at 1 and are never
// reused, like an AUTOINCREMENT column.
type Memory struct {
	mu     sync.RWMutex
	rows   map[int64]types.Student
	nextID int64
}

var _ storage.Storage = (*Memory)(nil)

// New returns an empty store.
func New() *Memory {
	return &Memory{
		rows:   make(map[int64]types.Student),
		nextID: 1,
	}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// CreateStudent stores a row under the next id and returns it.
func (m *Memory) CreateStudent(_ context.Context, name, email, course string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.rows[id] = types.Student{ID: id, Name: name, Email: email, Course: course}
	return id, nil
}

// GetStudents lists rows in id order, which is what an unfiltered scan of
// a rowid table yields too.
func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.rows))
	for _, s := range m.rows {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

// GetStudentByID returns storage.ErrNotFound for an unknown id.
func (m *Memory) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.rows[id]
	if !ok {
		return types.Student{}, fmt.Errorf("no student with id %d: %w", id, storage.ErrNotFound)
	}
	return s, nil
}

// UpdateStudent replaces the row with student.ID. An unknown id is ignored.
func (m *Memory) UpdateStudent(_ context.Context, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[student.ID]; ok {
		m.rows[student.ID] = student
	}
	return nil
}

// DeleteStudent removes the row. An unknown id is ignored.
func (m *Memory) DeleteStudent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rows, id)
	return nil
}
