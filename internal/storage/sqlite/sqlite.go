// Package sqlite provides a SQLite-backed implementation of
// storage.Storage using database/sql.
//
// Every method takes its own connection from the pool with db.Conn, prepares
// its statement on it, and releases both with defer before returning. No
// connection or statement outlives a call and no call runs in a
// transaction.
//
// The blank import registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// schema is idempotent, safe to run on every startup.
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT NOT NULL,
		email  TEXT NOT NULL,
		course TEXT NOT NULL DEFAULT ''
	)
`

// SQLite is the SQLite implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database file at path (creating it if needed),
// makes sure the students table exists and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	// sql.Open only validates the driver name; Ping makes the first real
	// connection so a bad path fails here rather than on the first query.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the underlying pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// prepare takes a dedicated connection and prepares query on it. The
// returned release func closes the statement and then the connection; the
// caller defers it.
func (s *SQLite) prepare(ctx context.Context, op, query string) (*sql.Stmt, func(), error) {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: conn: %w", op, err)
	}

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("%s: prepare: %w", op, err)
	}

	release := func() {
		stmt.Close()
		conn.Close()
	}
	return stmt, release, nil
}

// CreateStudent inserts a row with placeholders so the values are always
// treated as data, never as SQL.
func (s *SQLite) CreateStudent(ctx context.Context, name, email, course string) (int64, error) {
	stmt, release, err := s.prepare(ctx, "CreateStudent",
		"INSERT INTO students (name, email, course) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, err
	}
	defer release()

	result, err := stmt.ExecContext(ctx, name, email, course)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudentByID returns storage.ErrNotFound when no row has id.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	stmt, release, err := s.prepare(ctx, "GetStudentByID",
		"SELECT id, name, email, course FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, err
	}
	defer release()

	var student types.Student
	err = stmt.QueryRowContext(ctx, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Course,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all rows. Columns are listed explicitly so a column
// added later cannot break Scan's ordering.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, release, err := s.prepare(ctx, "GetStudents",
		"SELECT id, name, email, course FROM students",
	)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Course,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudent does not check RowsAffected: an unknown id updates nothing
// and that is not an error.
func (s *SQLite) UpdateStudent(ctx context.Context, student types.Student) error {
	stmt, release, err := s.prepare(ctx, "UpdateStudent",
		"UPDATE students SET name = ?, email = ?, course = ? WHERE id = ?",
	)
	if err != nil {
		return err
	}
	defer release()

	// name, email, course, id: same order as the placeholders.
	if _, err := stmt.ExecContext(ctx, student.Name, student.Email, student.Course, student.ID); err != nil {
		return fmt.Errorf("UpdateStudent: exec: %w", err)
	}

	return nil
}

// DeleteStudent removes the row with id. Like UpdateStudent it ignores
// RowsAffected.
func (s *SQLite) DeleteStudent(ctx context.Context, id int64) error {
	stmt, release, err := s.prepare(ctx, "DeleteStudent", "DELETE FROM students WHERE id = ?")
	if err != nil {
		return err
	}
	defer release()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	return nil
}
