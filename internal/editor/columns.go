package editor

import (
	"fmt"
	"strconv"

	"github.com/aanand-mishra/student-desk/internal/types"
)

// Column maps a table column to the student field it shows.
type Column struct {
	Key   string
	Title string
	Value func(types.Student) string
}

// DefaultColumns is the id/name/email/course table.
var DefaultColumns = []Column{
	{Key: "id", Title: "ID", Value: func(s types.Student) string { return strconv.FormatInt(s.ID, 10) }},
	{Key: "name", Title: "NAME", Value: func(s types.Student) string { return s.Name }},
	{Key: "email", Title: "EMAIL", Value: func(s types.Student) string { return s.Email }},
	{Key: "course", Title: "COURSE", Value: func(s types.Student) string { return s.Course }},
}

// ColumnsFor picks columns from DefaultColumns by key, in the order given.
// No keys means all of them.
func ColumnsFor(keys ...string) ([]Column, error) {
	if len(keys) == 0 {
		return DefaultColumns, nil
	}

	cols := make([]Column, 0, len(keys))
	for _, key := range keys {
		col, ok := columnByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", key)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func columnByKey(key string) (Column, bool) {
	for _, c := range DefaultColumns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
