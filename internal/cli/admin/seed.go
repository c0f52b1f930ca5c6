package admin

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/seed"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample data",
		Long: `Load sample projects, users and todos.

Without --file the built-in data is used: a default project, three sample
projects, three users and a few assigned todos. --file loads a JSON file
that must match the seed schema. Records that already exist are skipped,
so seeding twice is safe.`,
		RunE: runSeed,
	}

	cmd.Flags().String("file", "", "JSON fixtures file (defaults to the built-in sample data)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	path, _ := cmd.Flags().GetString("file")
	var (
		fixtures *seed.Fixtures
		err      error
	)
	if path != "" {
		fixtures, err = seed.LoadFile(path)
	} else {
		fixtures, err = seed.Default()
	}
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	res, err := seed.New(cliInstance.App).Apply(ctx, fixtures)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(res, func() error {
		fmt.Printf("✓ Seeded %d projects, %d users and %d todos (%d assignments, %d already present)\n",
			res.ProjectsCreated, res.UsersCreated, res.TodosCreated, res.Assigned, res.Skipped)
		return nil
	})
}
