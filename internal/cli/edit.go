package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-desk/internal/console"
	"github.com/aanand-mishra/student-desk/internal/editor"
)

// NewEditCommand creates the edit command: an interactive session on
// stdin/stdout.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit students interactively",
		Long: `Open an interactive session over the students table.

Set the name, email and course fields, then add a student, or select a row
to update or delete it. Type "help" inside the session for the commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.store.Close()

			policy, err := editor.ParseFaultPolicy(rt.cfg.Editor.FaultPolicy)
			if err != nil {
				return err
			}

			ed := editor.New(rt.store, rt.log, policy)
			session := console.New(ed, cmd.InOrStdin(), cmd.OutOrStdout(), rt.log)
			// Ctrl+C ends the session like quit does.
			if err := session.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
