package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	projectservice "github.com/thenoetrevino/tandem/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a project",
		Long: `Update the given fields of a project. Omitted flags are left alone;
--description="" clears the description.

Examples:
  tandem project update 3f2a... --name="Platform"
  tandem project update --id=3f2a... --color="#EF4444"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New description (empty clears it)")
	cmd.Flags().String("color", "", "New color as #RRGGBB")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID, err := cli.ResolveID(cmd, args, "project")
	if err != nil {
		return formatter.Fail(err)
	}

	req := projectservice.UpdateProjectRequest{
		ID:          projectID,
		Name:        cli.ChangedString(cmd, "name"),
		Description: cli.ChangedString(cmd, "description"),
		Color:       cli.ChangedString(cmd, "color"),
	}
	if req.Name == nil && req.Description == nil && req.Color == nil {
		return formatter.Fail(cli.Usagef("nothing to update: pass --name, --description or --color"))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	project, err := cliInstance.App.ProjectService.UpdateProject(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(project, func() error {
		fmt.Printf("✓ Project '%s' updated successfully\n", project.Name)
		return nil
	})
}
