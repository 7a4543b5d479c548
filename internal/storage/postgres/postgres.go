// Package postgres provides a PostgreSQL-backed implementation of
// storage.Storage using database/sql and the lib/pq driver.
//
// It follows the same rules as the sqlite backend: one connection and one
// prepared statement per call, both released before the call returns, no
// transactions. The differences are PostgreSQL's: $n placeholders, SERIAL
// ids, and INSERT ... RETURNING id because pq does not support
// LastInsertId.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"

	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id     SERIAL PRIMARY KEY,
		name   TEXT NOT NULL,
		email  TEXT NOT NULL,
		course TEXT NOT NULL DEFAULT ''
	)
`

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	Db *sql.DB
}

var _ storage.Storage = (*Postgres)(nil)

// New connects using dsn (a postgres:// URL or a key=value string),
// creates the students table if needed and returns a ready *Postgres.
func New(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{Db: db}, nil
}

// Close closes the underlying pool.
func (p *Postgres) Close() error {
	return p.Db.Close()
}

// prepare mirrors the sqlite backend: a dedicated connection, one
// statement, and a release func for the caller to defer.
func (p *Postgres) prepare(ctx context.Context, op, query string) (*sql.Stmt, func(), error) {
	conn, err := p.Db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: conn: %w", op, err)
	}

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("%s: prepare: %w", op, err)
	}

	return stmt, func() {
		stmt.Close()
		conn.Close()
	}, nil
}

// CreateStudent inserts a row and reads the new id back with RETURNING.
func (p *Postgres) CreateStudent(ctx context.Context, name, email, course string) (int64, error) {
	stmt, release, err := p.prepare(ctx, "CreateStudent",
		"INSERT INTO students (name, email, course) VALUES ($1, $2, $3) RETURNING id",
	)
	if err != nil {
		return 0, err
	}
	defer release()

	var id int64
	if err := stmt.QueryRowContext(ctx, name, email, course).Scan(&id); err != nil {
		return 0, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return id, nil
}

// GetStudentByID returns storage.ErrNotFound when no row has id.
func (p *Postgres) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	stmt, release, err := p.prepare(ctx, "GetStudentByID",
		"SELECT id, name, email, course FROM students WHERE id = $1 LIMIT 1",
	)
	if err != nil {
		return types.Student{}, err
	}
	defer release()

	var student types.Student
	err = stmt.QueryRowContext(ctx, id).Scan(&student.ID, &student.Name, &student.Email, &student.Course)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all rows in the order the server yields them.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, release, err := p.prepare(ctx, "GetStudents", "SELECT id, name, email, course FROM students")
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
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.Course); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudent updates the row keyed by student.ID. An unknown id
// updates nothing and is not an error.
func (p *Postgres) UpdateStudent(ctx context.Context, student types.Student) error {
	stmt, release, err := p.prepare(ctx, "UpdateStudent",
		"UPDATE students SET name = $1, email = $2, course = $3 WHERE id = $4",
	)
	if err != nil {
		return err
	}
	defer release()

	if _, err := stmt.ExecContext(ctx, student.Name, student.Email, student.Course, student.ID); err != nil {
		return fmt.Errorf("UpdateStudent: exec: %w", err)
	}
	return nil
}

// DeleteStudent removes the row with id, if any.
func (p *Postgres) DeleteStudent(ctx context.Context, id int64) error {
	stmt, release, err := p.prepare(ctx, "DeleteStudent", "DELETE FROM students WHERE id = $1")
	if err != nil {
		return err
	}
	defer release()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}
	return nil
}
