// Package admin holds the cli commands that manage the installation itself
//
// e.g., tandem migrate ..., tandem seed, tandem config ...
package admin

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/database"
)

// MigrateCmd returns the migrate parent command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or inspect the embedded schema migrations.

Every command already migrates the database on startup; 'migrate up' is
for running that step on its own, e.g. before starting the API server.`,
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	cmd.AddCommand(migrateVersionCmd())

	return cmd
}

type migrationResult struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Applied bool `json:"applied"`
}

func (m migrationResult) GetID() string {
	return fmt.Sprint(m.Version)
}

func migrateUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := cli.FormatterFor(cmd)

			cliInstance, err := cli.GetCLIFromContext(ctx)
			if err != nil {
				return formatter.Fail(err)
			}
			defer cli.Close(cliInstance)

			db := cliInstance.App.DB()
			if err := database.Migrate(ctx, db); err != nil {
				return formatter.Fail(err)
			}
			status, err := database.GetMigrationStatus(ctx, db)
			if err != nil {
				return formatter.Fail(err)
			}

			res := migrationResult(status)
			return formatter.Render(res, func() error {
				fmt.Printf("✓ Database schema is at version %d\n", res.Version)
				return nil
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func migrateDownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration (drops all data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := cli.FormatterFor(cmd)
			force, _ := cmd.Flags().GetBool("force")

			if !force && !formatter.Quiet && !formatter.JSON {
				if !cli.Confirm("Roll back all migrations? This deletes every project, user and todo.") {
					fmt.Println("Cancelled")
					return nil
				}
			}

			cliInstance, err := cli.GetCLIFromContext(ctx)
			if err != nil {
				return formatter.Fail(err)
			}
			defer cli.Close(cliInstance)

			db := cliInstance.App.DB()
			if err := database.MigrateDown(ctx, db); err != nil {
				return formatter.Fail(err)
			}
			status, err := database.GetMigrationStatus(ctx, db)
			if err != nil {
				return formatter.Fail(err)
			}

			res := migrationResult(status)
			return formatter.Render(res, func() error {
				fmt.Println("✓ All migrations rolled back")
				return nil
			})
		},
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)
	return cmd
}

func migrateVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := cli.FormatterFor(cmd)

			cliInstance, err := cli.GetCLIFromContext(ctx)
			if err != nil {
				return formatter.Fail(err)
			}
			defer cli.Close(cliInstance)

			status, err := database.GetMigrationStatus(ctx, cliInstance.App.DB())
			if err != nil {
				return formatter.Fail(err)
			}

			res := migrationResult(status)
			return formatter.Render(res, func() error {
				switch {
				case !res.Applied:
					fmt.Println("No migrations applied")
				case res.Dirty:
					fmt.Printf("Version %d (dirty: a migration failed part way)\n", res.Version)
				default:
					fmt.Printf("Version %d\n", res.Version)
				}
				return nil
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}
