package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/student-desk/internal/editor"
	"github.com/aanand-mishra/student-desk/internal/types"
)

// cellSafe keeps a value on one line and inside its cell.
var cellSafe = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// RenderTable writes rows as an aligned table with a header line.
func RenderTable(w io.Writer, cols []editor.Column, rows []types.Student) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no records)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = c.Title
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))

	for _, row := range rows {
		for i, c := range cols {
			cells[i] = cellSafe.Replace(c.Value(row))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// renderForm shows the three input fields and the selection.
func renderForm(w io.Writer, st *editor.State) {
	fmt.Fprintf(w, "name:     %s\n", st.Name)
	fmt.Fprintf(w, "email:    %s\n", st.Email)
	fmt.Fprintf(w, "course:   %s\n", st.Course)
	if st.Selection.Valid {
		fmt.Fprintf(w, "selected: %d\n", st.Selection.ID)
	} else {
		fmt.Fprintln(w, "selected: none")
	}
}
