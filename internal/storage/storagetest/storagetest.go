// Package storagetest holds the behaviour every storage.Storage backend
// must show. Each backend's tests call Run with a constructor for a fresh,
// empty store.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"
)

// Factory returns an empty store. Run closes it when the subtest ends.
type Factory func(t *testing.T) storage.Storage

// Run executes the shared CRUD cases against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"EmptyListIsNotNil", testEmptyList},
		{"CreateThenList", testCreateThenList},
		{"CreateAssignsUniqueIDs", testUniqueIDs},
		{"CreateStoresInputVerbatim", testVerbatim},
		{"GetByID", testGetByID},
		{"UpdateExisting", testUpdateExisting},
		{"UpdateMissingIsNoop", testUpdateMissing},
		{"DeleteExisting", testDeleteExisting},
		{"DeleteMissingIsNoop", testDeleteMissing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tc.fn(t, s)
		})
	}
}

func mustCreate(t *testing.T, s storage.Storage, name, email, course string) int64 {
	t.Helper()
	id, err := s.CreateStudent(context.Background(), name, email, course)
	require.NoError(t, err)
	return id
}

func mustList(t *testing.T, s storage.Storage) []types.Student {
	t.Helper()
	list, err := s.GetStudents(context.Background())
	require.NoError(t, err)
	return list
}

func testEmptyList(t *testing.T, s storage.Storage) {
	list := mustList(t, s)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testCreateThenList(t *testing.T, s storage.Storage) {
	mustCreate(t, s, "Bob", "bob@example.org", "MATH200")
	before := mustList(t, s)

	id := mustCreate(t, s, "Ann", "ann@x.com", "CS101")
	after := mustList(t, s)

	require.Len(t, after, len(before)+1)
	assert.Contains(t, after, types.Student{ID: id, Name: "Ann", Email: "ann@x.com", Course: "CS101"})
	for _, old := range before {
		assert.NotEqual(t, id, old.ID)
	}
}

func testUniqueIDs(t *testing.T, s storage.Storage) {
	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		id := mustCreate(t, s, "Same", "same@x.com", "")
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, mustList(t, s), 5)
}

// Stores do not validate; that is the caller's job.
func testVerbatim(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, "", "  ", "")

	got, err := s.GetStudentByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: id, Name: "", Email: "  ", Course: ""}, got)
}

func testGetByID(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, "Ann", "ann@x.com", "CS101")

	got, err := s.GetStudentByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = s.GetStudentByID(context.Background(), id+1000)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUpdateExisting(t *testing.T, s storage.Storage) {
	annID := mustCreate(t, s, "Ann", "ann@x.com", "CS101")
	bobID := mustCreate(t, s, "Bob", "bob@example.org", "MATH200")

	err := s.UpdateStudent(context.Background(), types.Student{
		ID: annID, Name: "Ann Lee", Email: "ann@lee.com", Course: "CS102",
	})
	require.NoError(t, err)

	list := mustList(t, s)
	require.Len(t, list, 2)
	assert.Contains(t, list, types.Student{ID: annID, Name: "Ann Lee", Email: "ann@lee.com", Course: "CS102"})
	assert.Contains(t, list, types.Student{ID: bobID, Name: "Bob", Email: "bob@example.org", Course: "MATH200"})
}

func testUpdateMissing(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, "Ann", "ann@x.com", "CS101")
	before := mustList(t, s)

	err := s.UpdateStudent(context.Background(), types.Student{
		ID: id + 1000, Name: "Ghost", Email: "ghost@x.com",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, before, mustList(t, s))
}

func testDeleteExisting(t *testing.T, s storage.Storage) {
	annID := mustCreate(t, s, "Ann", "ann@x.com", "CS101")
	mustCreate(t, s, "Bob", "bob@example.org", "MATH200")

	require.NoError(t, s.DeleteStudent(context.Background(), annID))

	list := mustList(t, s)
	require.Len(t, list, 1)
	for _, st := range list {
		assert.NotEqual(t, annID, st.ID)
	}
}

func testDeleteMissing(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, "Ann", "ann@x.com", "CS101")
	before := mustList(t, s)

	require.NoError(t, s.DeleteStudent(context.Background(), id+1000))

	assert.ElementsMatch(t, before, mustList(t, s))
}
