package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-desk/internal/storage/sqlite"
	"github.com/aanand-mishra/student-desk/internal/types"
)

// fixture writes a config pointing at a fresh SQLite file holding Ann
// and Bob, and returns the config path and the database path.
func fixture(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "students.db")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = store.CreateStudent(ctx, "Ann", "ann@x.com", "CS101")
	require.NoError(t, err)
	_, err = store.CreateStudent(ctx, "Bob", "bob@example.org", "MATH200")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	cfgPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("env: prod\nstorage:\n  driver: sqlite3\n  dsn: %q\nhttp_server:\n  address: 127.0.0.1:0\n", dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath, dbPath
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestList_Table(t *testing.T) {
	cfg, _ := fixture(t)

	out, _, err := execute(t, "", "--config", cfg, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "ann@x.com")
	assert.Contains(t, lines[2], "MATH200")
}

func TestList_Columns(t *testing.T) {
	cfg, _ := fixture(t)

	out, _, err := execute(t, "", "--config", cfg, "list", "--columns", "name,course")
	require.NoError(t, err)
	assert.NotContains(t, out, "EMAIL")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "CS101")
}

func TestList_JSON(t *testing.T) {
	cfg, _ := fixture(t)

	out, _, err := execute(t, "", "--config", cfg, "list", "--format", "json")
	require.NoError(t, err)

	var got []types.Student
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []types.Student{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Course: "CS101"},
		{ID: 2, Name: "Bob", Email: "bob@example.org", Course: "MATH200"},
	}, got)
}

func TestList_YAML(t *testing.T) {
	cfg, _ := fixture(t)

	out, _, err := execute(t, "", "--config", cfg, "list", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "- id: 1\n"))

	var got []types.Student
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "bob@example.org", got[1].Email)
}

func TestList_BadFlags(t *testing.T) {
	cfg, _ := fixture(t)

	_, _, err := execute(t, "", "--config", cfg, "list", "--format", "xml")
	assert.ErrorContains(t, err, `invalid format "xml"`)

	_, _, err = execute(t, "", "--config", cfg, "list", "--columns", "age")
	assert.ErrorContains(t, err, `unknown column "age"`)
}

func TestMissingConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	_, _, err := execute(t, "", "list")
	assert.ErrorContains(t, err, "config path is not set")
}

func TestConfigPathFromEnv(t *testing.T) {
	cfg, _ := fixture(t)
	t.Setenv("CONFIG_PATH", cfg)

	out, _, err := execute(t, "", "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
}

func TestEdit(t *testing.T) {
	cfg, dbPath := fixture(t)

	out, _, err := execute(t, "select 1\ncourse CS102\nupdate\nquit\n", "--config", cfg, "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "selected: 1")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ann, err := store.GetStudentByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "CS102", ann.Course)
}

func TestEdit_LogsToStderr(t *testing.T) {
	cfg, _ := fixture(t)

	out, errOut, err := execute(t, "quit\n", "--config", cfg, "edit")
	require.NoError(t, err)
	assert.NotContains(t, out, "editor session started")
	assert.Contains(t, errOut, "editor session started")
	assert.Contains(t, errOut, `"session"`)
}

func TestEdit_InterruptIsCleanExit(t *testing.T) {
	cfg, _ := fixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("add\n"))
	cmd.SetArgs([]string{"--config", cfg, "edit"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.NotContains(t, out.String(), "> ")
}

func TestServe_StopsWhenContextDone(t *testing.T) {
	cfg, _ := fixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", cfg, "serve"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, errOut.String(), "server stopped gracefully")
}
