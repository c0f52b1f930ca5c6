package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
)

// ShowCmd returns the todo show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show todo details",
		Long:  "Display all details of a todo including its markdown description and assignees.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Todo ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	todoID, err := cli.ResolveID(cmd, args, "todo")
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	view, err := cliInstance.App.AssignmentService.GetTodoWithAssignments(ctx, todoID)
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'tandem todo list' to see available todos")
	}
	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, view.ProjectID)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(view, func() error {
		fmt.Println(renderTodoCard(view, project, time.Now()))
		return nil
	})
}

func renderTodoCard(view *models.TodoWithAssignments, project *models.Project, now time.Time) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(view.Title))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(view.ID))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s %s %s\n",
		styles.LabelStyle.Render("Project:"),
		styles.ColorSwatch(project.Color),
		styles.ValueStyle.Render(project.Name)))
	content.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"),
		styles.StatusBadge(view.Status),
		styles.LabelStyle.Render("Priority:"),
		styles.PriorityBadge(view.Priority)))

	if view.DueDate != nil && !view.DueDate.IsZero() {
		due := styles.ValueStyle.Render(view.DueDate.String())
		if view.IsOverdue(now) {
			due = styles.ErrorStyle.Render(view.DueDate.String() + " (overdue)")
		}
		content.WriteString(fmt.Sprintf("%s %s\n", styles.LabelStyle.Render("Due:"), due))
	}

	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Assignees:"),
		styles.RenderUserChips(view.AssignedUsers)))

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	description := ""
	if view.Description != nil {
		description = *view.Description
	}
	content.WriteString(styles.RenderMarkdown(description, styles.CardWidth-6))
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("\n%s %s  %s %s",
		styles.LabelStyle.Render("Created:"),
		styles.SubtitleStyle.Render(view.CreatedAt.Local().Format("2006-01-02 15:04")),
		styles.LabelStyle.Render("Updated:"),
		styles.SubtitleStyle.Render(view.UpdatedAt.Local().Format("2006-01-02 15:04"))))

	return styles.RenderCard(content.String())
}
