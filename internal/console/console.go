// Package console is a line-oriented front end for the editor. It plays
// the part of a form: three input fields, a table of every student, and
// add/update/delete/clear actions plus row selection.
//
// Problems (missing fields, no selection, store faults) are printed as
// "! <message>" notices and the session carries on.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-desk/internal/editor"
)

const helpText = `commands:
  name <text>     set the name field
  email <text>    set the email field
  course <text>   set the course field
  add             create a student from the fields
  select <id>     load a row into the fields for editing
  update          save the fields to the selected row
  delete          remove the selected row
  clear           empty the fields and drop the selection
  list            reload and show the table
  form            show the fields and the selection
  help            this text
  quit            leave
`

// maxLineLen caps one command line. Longer lines are read to the end,
// dropped and reported.
const maxLineLen = 64 * 1024

var errLineTooLong = errors.New("line too long")

// Session is one interactive editing session.
type Session struct {
	ed   *editor.Editor
	st   editor.State
	in   *bufio.Reader
	out  io.Writer
	cols []editor.Column
	log  *slog.Logger
}

// New builds a session reading commands from in and writing to out. Every
// log line of the session carries a fresh session id.
func New(ed *editor.Editor, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	return &Session{
		ed:   ed,
		in:   bufio.NewReader(in),
		out:  out,
		cols: editor.DefaultColumns,
		log:  log.With(slog.String("session", uuid.NewString())),
	}
}

// State exposes the editor state, mainly for tests.
func (s *Session) State() *editor.State {
	return &s.st
}

// Run loads the table and processes commands until quit, end of input or
// ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("editor session started")
	defer s.log.Info("editor session ended")

	if err := s.ed.Reload(ctx, &s.st); err != nil {
		s.notice(err)
	}
	s.table()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "> ")
		line, err := s.readLine()
		if errors.Is(err, errLineTooLong) {
			s.notice(err)
			continue
		}
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if quit := s.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. A line longer
// than maxLineLen is consumed in full and reported as errLineTooLong.
func (s *Session) readLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, more, err := s.in.ReadLine()
		if err != nil {
			return "", err
		}
		if len(line)+len(chunk) > maxLineLen {
			tooLong = true
			line = nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(line), nil
}

// dispatch runs one command line and reports whether the session is over.
func (s *Session) dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSuffix(line, "\r")
	cmd, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

	switch cmd {
	case "":
	case "name":
		s.st.Name = arg
	case "email":
		s.st.Email = arg
	case "course":
		s.st.Course = arg
	case "add":
		s.mutate(s.ed.Add(ctx, &s.st))
	case "update":
		s.mutate(s.ed.Update(ctx, &s.st))
	case "delete":
		s.mutate(s.ed.Delete(ctx, &s.st))
	case "clear":
		s.ed.Clear(&s.st)
		renderForm(s.out, &s.st)
	case "select":
		s.selectRow(arg)
	case "list":
		if err := s.ed.Reload(ctx, &s.st); err != nil {
			s.notice(err)
			return false
		}
		s.table()
	case "form":
		renderForm(s.out, &s.st)
	case "help":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "! unknown command %q (type help)\n", cmd)
	}
	return false
}

func (s *Session) mutate(err error) {
	if err != nil {
		s.notice(err)
		return
	}
	s.table()
}

func (s *Session) selectRow(arg string) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "! select needs a numeric id")
		return
	}
	if err := s.ed.SelectID(&s.st, id); err != nil {
		s.notice(err)
		return
	}
	renderForm(s.out, &s.st)
}

func (s *Session) table() {
	if err := RenderTable(s.out, s.cols, s.st.Rows); err != nil {
		s.log.Error("render table", slog.String("error", err.Error()))
	}
}

// notice prints a user-facing message for err. Persistence faults are
// logged as well, since the user only sees the summary.
func (s *Session) notice(err error) {
	var fault *editor.PersistenceFault
	if errors.As(err, &fault) {
		s.log.Error("persistence fault",
			slog.String("op", fault.Op),
			slog.String("error", fault.Err.Error()))
	}
	fmt.Fprintf(s.out, "! %s\n", err.Error())
}
