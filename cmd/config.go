package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/chargectl/internal/config"
	"github.com/spf13/cobra"
)

const maskedSecret = "********"

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ~/.chargectl/config.toml",
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(app))

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipWireAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve home directory: %w", err)
			}

			cfg := config.Default(homeDir)
			if err := config.WriteFile(cfg.Path, cfg, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config, environment overrides included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.cfg
			if cfg.API.ClientSecret != "" {
				cfg.API.ClientSecret = maskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.Path)
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
}
