package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/chargectl/internal/application"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "routes",
		Short:       "List console pages and whether they require sign-in",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipWireAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			nameCol := lipgloss.NewStyle().Width(18)
			pathCol := lipgloss.NewStyle().Width(24)
			authStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

			lines := make([]string, 0, len(application.ConsoleRoutes()))
			for _, route := range application.ConsoleRoutes() {
				line := nameCol.Render(route.Name) + pathCol.Render(route.Path)
				if route.RequiresAuth {
					line += authStyle.Render("sign-in required")
				} else {
					line += "public"
				}
				lines = append(lines, line)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}
