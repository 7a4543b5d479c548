package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-desk/internal/editor"
	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/storage/memory"
	"github.com/aanand-mishra/student-desk/internal/types"
)

func sampleRows() []types.Student {
	return []types.Student{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Course: "CS101"},
		{ID: 2, Name: "Bob", Email: "bob@example.org", Course: "MATH200"},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, editor.DefaultColumns, sampleRows()))
	newGoldie(t).Assert(t, "table", buf.Bytes())
}

func TestRenderTable_Columns(t *testing.T) {
	cols, err := editor.ColumnsFor("email", "id")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, cols, sampleRows()))
	newGoldie(t).Assert(t, "table_columns", buf.Bytes())
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, editor.DefaultColumns, nil))
	newGoldie(t).Assert(t, "table_empty", buf.Bytes())
}

func TestRenderTable_TabsInValues(t *testing.T) {
	var buf bytes.Buffer
	rows := []types.Student{{ID: 1, Name: "A\tB", Email: "a@b", Course: "x\ny"}}
	require.NoError(t, RenderTable(&buf, editor.DefaultColumns, rows))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "A B")
	assert.Contains(t, lines[1], "x y")
}

// runScript feeds script to a session over store and returns the output.
func runScript(t *testing.T, store storage.Storage, policy editor.FaultPolicy, script string) (string, *Session) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer
	s := New(editor.New(store, log, policy), strings.NewReader(script), &out, log)
	require.NoError(t, s.Run(context.Background()))
	return out.String(), s
}

func TestSession_AddSelectUpdate(t *testing.T) {
	store := memory.New()
	out, s := runScript(t, store, editor.SurfaceFaults, `name Ann
email ann@x.com
course CS101
add
select 1
course CS102
update
quit
`)

	assert.Contains(t, out, "(no records)")
	assert.Contains(t, out, "selected: 1")

	list, err := store.GetStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, types.Student{ID: 1, Name: "Ann", Email: "ann@x.com", Course: "CS102"}, list[0])

	assert.Equal(t, list, s.State().Rows)
	assert.False(t, s.State().Selection.Valid)
}

func TestSession_Notices(t *testing.T) {
	store := memory.New()
	out, _ := runScript(t, store, editor.SurfaceFaults, `course CS101
add
update
delete
select abc
select 7
frobnicate
quit
`)

	assert.Contains(t, out, "! Name and Email are required!")
	assert.Contains(t, out, "! select a student first")
	assert.Contains(t, out, "! select needs a numeric id")
	assert.Contains(t, out, "! id 7: no such row in the list")
	assert.Contains(t, out, `! unknown command "frobnicate"`)

	list, err := store.GetStudents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSession_ValidationKeepsInput(t *testing.T) {
	_, s := runScript(t, memory.New(), editor.SurfaceFaults, "name Ann\ncourse CS101\nadd\n")

	assert.Equal(t, "Ann", s.State().Name)
	assert.Equal(t, "CS101", s.State().Course)
}

func TestSession_FieldTextIsVerbatim(t *testing.T) {
	_, s := runScript(t, memory.New(), editor.SurfaceFaults, "name  Ann  Lee \nemail \n")

	assert.Equal(t, " Ann  Lee ", s.State().Name)
	assert.Equal(t, "", s.State().Email)
}

func TestSession_DeleteAndClear(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	for _, r := range sampleRows() {
		_, err := store.CreateStudent(ctx, r.Name, r.Email, r.Course)
		require.NoError(t, err)
	}

	out, s := runScript(t, store, editor.SurfaceFaults, `select 2
clear
select 1
delete
form
`)

	assert.Contains(t, out, "selected: none")
	require.Len(t, s.State().Rows, 1)
	assert.Equal(t, "Bob", s.State().Rows[0].Name)
}

func TestSession_ListKeepsForm(t *testing.T) {
	store := memory.New()
	_, err := store.CreateStudent(context.Background(), "Ann", "ann@x.com", "CS101")
	require.NoError(t, err)

	_, s := runScript(t, store, editor.SurfaceFaults, "select 1\ncourse draft\nlist\n")

	assert.True(t, s.State().Selection.Valid)
	assert.Equal(t, "draft", s.State().Course)
}

func TestSession_OverlongLineIsSkipped(t *testing.T) {
	script := "name " + strings.Repeat("a", 70000) + "\nname Ann\nform\nquit\n"

	out, s := runScript(t, memory.New(), editor.SurfaceFaults, script)

	assert.Contains(t, out, "! line too long")
	assert.Equal(t, "Ann", s.State().Name)
	assert.Contains(t, out, "name:     Ann\n")
}

func TestSession_LastLineWithoutNewline(t *testing.T) {
	_, s := runScript(t, memory.New(), editor.SurfaceFaults, "name Ann\r\nemail ann@x.com")

	assert.Equal(t, "Ann", s.State().Name)
	assert.Equal(t, "ann@x.com", s.State().Email)
}

type brokenStore struct {
	storage.Storage
}

func (brokenStore) GetStudents(context.Context) ([]types.Student, error) {
	return nil, errors.New("database is locked")
}

func TestSession_SurfacedFaultDoesNotEndSession(t *testing.T) {
	out, _ := runScript(t, brokenStore{memory.New()}, editor.SurfaceFaults, "list\nhelp\n")

	assert.Contains(t, out, "! could not list: database is locked")
	assert.Contains(t, out, "commands:")
}

func TestSession_SuppressedFaultShowsEmptyTable(t *testing.T) {
	out, _ := runScript(t, brokenStore{memory.New()}, editor.SuppressFaults, "list\n")

	assert.NotContains(t, out, "could not list")
	assert.Contains(t, out, "(no records)")
}

func TestSession_StopsOnCancelledContext(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(editor.New(memory.New(), log, editor.SurfaceFaults), strings.NewReader("help\n"), io.Discard, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}
