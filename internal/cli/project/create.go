package project

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
	projectservice "github.com/thenoetrevino/tandem/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project with specified attributes.

Examples:
  # Simple project (human-readable output)
  tandem project create --name="Backend API"

  # JSON output for agents
  tandem project create --name="Backend API" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(tandem project create --name="Backend API" --quiet)

  # With description and color
  tandem project create \
    --name="Backend API" \
    --description="REST API for mobile app" \
    --color="#10B981"
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("color", models.DefaultProjectColor, "Project color as #RRGGBB")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	color, _ := cmd.Flags().GetString("color")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
		Name:        name,
		Description: description,
		Color:       color,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(project, func() error {
		fmt.Printf("✓ Project %s '%s' created successfully (ID: %s)\n",
			styles.ColorSwatch(project.Color), project.Name, project.ID)
		if project.Description != nil {
			fmt.Printf("  Description: %s\n", *project.Description)
		}
		return nil
	})
}
