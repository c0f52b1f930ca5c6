package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show project details and its todos",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID, err := cli.ResolveID(cmd, args, "project")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, projectID)
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'tandem project list' to see available projects")
	}
	todos, err := cliInstance.App.TodoService.GetTodosByProject(ctx, project.ID)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(project, func() error {
		var content strings.Builder
		content.WriteString(styles.TitleStyle.Render(project.Name) + " " + styles.ColorSwatch(project.Color))
		content.WriteString("\n")
		content.WriteString(styles.SubtitleStyle.Render(project.ID))
		content.WriteString("\n")
		if project.Description != nil {
			content.WriteString("\n" + styles.ValueStyle.Render(styles.Wrap(*project.Description, styles.CardWidth-6)) + "\n")
		}

		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Todos (%d)", len(todos))))
		content.WriteString("\n")
		now := time.Now()
		for _, t := range todos {
			content.WriteString("  " + styles.RenderTodoLine(t, t.IsOverdue(now)) + "\n")
		}
		if len(todos) == 0 {
			content.WriteString("  " + styles.SubtitleStyle.Render("No todos yet") + "\n")
		}

		fmt.Println(styles.RenderCard(strings.TrimRight(content.String(), "\n")))
		return nil
	})
}
