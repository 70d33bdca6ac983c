package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "open PATH",
		Short:   "Open a console page",
		Long:    "Open a console page such as /chargers/42 or /admin/users. Protected pages show the sign-in view when there is no session.",
		Example: "  chargectl open /admin/users\n  chargectl open '/chargers/42?tab=sessions'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.startConsole(cmd.Context())
			if err != nil {
				return err
			}

			resolved, err := r.Push(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			return app.renderPage(cmd.OutOrStdout(), resolved)
		},
	}
}
