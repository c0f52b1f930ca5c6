package admin

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, the config file, .env and TANDEM_* overrides are applied.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)

			cfg, err := config.Load()
			if err != nil {
				return formatter.Fail(err)
			}

			return formatter.Render(cfg, func() error {
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				if err := enc.Encode(cfg); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return cli.FormatterFor(cmd).Fail(err)
			}
			fmt.Println(path)
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)
			force, _ := cmd.Flags().GetBool("force")

			path, err := config.Path()
			if err != nil {
				return formatter.Fail(err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return formatter.FailWithSuggestion(
					cli.Usagef("config file already exists at %s", path),
					"Pass --force to overwrite it")
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return formatter.Fail(err)
			}

			if err := config.Default().Save(); err != nil {
				return formatter.Fail(err)
			}
			fmt.Printf("✓ Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}
