// Package cmd assembles the tandem command tree
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/admin"
	"github.com/thenoetrevino/tandem/internal/cli/assign"
	"github.com/thenoetrevino/tandem/internal/cli/project"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/cli/todo"
	"github.com/thenoetrevino/tandem/internal/cli/use"
	"github.com/thenoetrevino/tandem/internal/cli/user"
	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/logging"
)

// NewRootCmd builds the tandem command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tandem",
		Short: "Tandem - shared todos for small teams",
		Long: `Tandem keeps projects, todos and the people assigned to them.

Every command accepts --json for machine-readable output and --quiet to
print only IDs, so commands compose in scripts:

  PROJECT=$(tandem project create --name=Launch --quiet)
  TODO=$(tandem todo create --project=$PROJECT --title="Write post" --quiet)
  tandem assign $TODO --user alice@example.com`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadEnvironment,
	}

	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(todo.TodoCmd())
	rootCmd.AddCommand(assign.AssignCmd())
	rootCmd.AddCommand(assign.AssignmentsCmd())
	rootCmd.AddCommand(assign.BoardCmd())
	rootCmd.AddCommand(assign.WorkloadCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(admin.MigrateCmd())
	rootCmd.AddCommand(admin.SeedCmd())
	rootCmd.AddCommand(admin.ConfigCmd())

	return rootCmd
}

// loadEnvironment reads the configuration once and sets up logging and colors for every command
func loadEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.FormatterFor(cmd).Fail(fmt.Errorf("failed to load config: %w", err))
	}
	if err := logging.Init(cfg.Log); err != nil {
		return cli.FormatterFor(cmd).Fail(fmt.Errorf("failed to initialize logging: %w", err))
	}
	styles.Init(cfg.ColorScheme)

	cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
	return nil
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
