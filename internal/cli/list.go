package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-desk/internal/console"
	"github.com/aanand-mishra/student-desk/internal/editor"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Format  string
	Columns []string
}

// ValidFormats are the list output formats.
var ValidFormats = []string{"table", "json", "yaml"}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table|json|yaml)")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "table columns, e.g. id,name (default all)")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	if !slices.Contains(ValidFormats, opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}
	cols, err := editor.ColumnsFor(opts.Columns...)
	if err != nil {
		return err
	}

	rt, err := setup(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.store.Close()

	students, err := rt.store.GetStudents(cmd.Context())
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(students)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(students); err != nil {
			return err
		}
		return enc.Close()
	default:
		return console.RenderTable(out, cols, students)
	}
}
