package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects, newest first. --stats adds todo and completed counts.",
		RunE:  runList,
	}

	cmd.Flags().Bool("stats", false, "Include todo counts per project")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	withStats, _ := cmd.Flags().GetBool("stats")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	if withStats {
		stats, err := cliInstance.App.ProjectService.GetProjectStats(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
		return cli.RenderList(formatter, stats, func() error {
			if len(stats) == 0 {
				fmt.Println("No projects found")
				return nil
			}
			fmt.Printf("Found %d projects:\n\n", len(stats))
			for _, s := range stats {
				fmt.Printf("  %s %s %s\n", styles.ColorSwatch(s.Color), s.Name,
					styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d done  [%s]", s.CompletedCount, s.TodoCount, s.ID)))
			}
			return nil
		})
	}

	projects, err := cliInstance.App.ProjectService.GetAllProjects(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return cli.RenderList(formatter, projects, func() error {
		if len(projects) == 0 {
			fmt.Println("No projects found")
			return nil
		}
		fmt.Printf("Found %d projects:\n\n", len(projects))
		for _, p := range projects {
			printProjectLine(p)
		}
		return nil
	})
}

func printProjectLine(p *models.Project) {
	fmt.Printf("  %s [%s] %s", styles.ColorSwatch(p.Color), p.ID, p.Name)
	if p.Description != nil {
		fmt.Printf(" - %s", *p.Description)
	}
	fmt.Println()
}
