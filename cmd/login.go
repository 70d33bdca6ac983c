package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/chargectl/internal/router"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const passwordEnv = "CHARGECTL_PASSWORD"

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string
	var redirect string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the charging platform",
		Long:  "Sign in with your console username and password. The password is read from --password, then " + passwordEnv + ", then prompted for without echo.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username, err = resolveUsername(cmd, username); err != nil {
				return err
			}
			if password, err = resolvePassword(cmd, password); err != nil {
				return err
			}

			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in...", func(ctx context.Context) error {
				return app.session.Login(ctx, username, password)
			})
			if err != nil {
				return err
			}

			session := app.session.Session()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.User.DisplayName())

			if redirect == "" {
				return nil
			}
			return resumeNavigation(cmd, app, redirect)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Console username")
	cmd.Flags().StringVar(&password, "password", "", "Console password (prefer "+passwordEnv+" or the prompt)")
	cmd.Flags().StringVar(&redirect, "redirect", "", "Console path to open after signing in, e.g. /admin/users")

	return cmd
}

// resumeNavigation opens the page the login view was reached from. Only
// console paths are honoured.
func resumeNavigation(cmd *cobra.Command, app *app, target string) error {
	if _, err := router.ParseLocation(target); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "ignoring redirect: %v\n", err)
		return nil
	}

	r, err := app.consoleRouter()
	if err != nil {
		return err
	}

	resolved, err := r.Push(target)
	if err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}

	return app.renderPage(cmd.OutOrStdout(), resolved)
}

func resolveUsername(cmd *cobra.Command, username string) (string, error) {
	if username = strings.TrimSpace(username); username != "" {
		return username, nil
	}
	if !stdinIsTerminal() {
		return "", errors.New("username is required in non-interactive mode (use --username)")
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read username: %w", err)
	}
	if username = strings.TrimSpace(line); username == "" {
		return "", errors.New("username is required")
	}
	return username, nil
}

func resolvePassword(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if fromEnv := os.Getenv(passwordEnv); fromEnv != "" {
		return fromEnv, nil
	}
	if !stdinIsTerminal() {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password or %s)", passwordEnv)
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("password is required")
	}
	return string(raw), nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
