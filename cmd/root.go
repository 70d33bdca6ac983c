package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// skipWireAnnotation marks commands that run even when the app cannot be
// wired, so a broken config can still be rewritten.
const skipWireAnnotation = "chargectl/skip-wire"

func Execute() error {
	a, wireErr := wireApp(os.Stderr)
	defer closeApp(a)

	return newRootCmd(a, wireErr).Execute()
}

func closeApp(a *app) {
	if a == nil {
		return
	}
	if err := a.close(); err != nil {
		a.logger.Warn().Err(err).Msg("close secret store")
	}
}

func newRootCmd(app *app, wireErr error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chargectl",
		Short:         "Charging platform console: sign in and browse the admin console",
		Long:          "chargectl signs you in to the charging platform backend, keeps the session token in your OS keyring (or pass, or a local file), and renders the admin console's pages behind the same login guard the web console uses.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	if wireErr != nil {
		rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			return wireErr
		}
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return wireErr
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newOpenCmd(app),
		newRoutesCmd(),
	)

	return rootCmd
}
