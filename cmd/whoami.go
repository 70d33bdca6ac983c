package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	authadapter "github.com/bnema/chargectl/internal/adapters/auth"
	"github.com/bnema/chargectl/internal/domain"
	"github.com/spf13/cobra"
)

type whoamiOutput struct {
	Authenticated    bool               `json:"authenticated"`
	Admin            bool               `json:"admin"`
	User             domain.UserProfile `json:"user,omitempty"`
	ProfileFetchedAt *time.Time         `json:"profile_fetched_at,omitempty"`
	Token            *whoamiToken       `json:"token,omitempty"`
}

type whoamiToken struct {
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := app.startConsole(cmd.Context())
			if err != nil {
				return err
			}

			session := app.session.Session()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newWhoamiOutput(session))
			}

			if !session.IsAuthenticated() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Not signed in. Run `chargectl login`.")
				return err
			}

			resolved, err := r.Resolve("/user")
			if err != nil {
				return err
			}
			return app.renderPage(cmd.OutOrStdout(), resolved)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")

	return cmd
}

func newWhoamiOutput(session domain.Session) whoamiOutput {
	out := whoamiOutput{
		Authenticated: session.IsAuthenticated(),
		Admin:         session.IsAdmin(),
		User:          session.User,
	}
	if !session.UserFetchedAt.IsZero() {
		fetchedAt := session.UserFetchedAt.UTC()
		out.ProfileFetchedAt = &fetchedAt
	}
	if info, ok := authadapter.InspectAccessToken(session.Token); ok {
		out.Token = &whoamiToken{Subject: info.Subject}
		if !info.ExpiresAt.IsZero() {
			expiresAt := info.ExpiresAt.UTC()
			out.Token.ExpiresAt = &expiresAt
		}
	}
	return out
}
