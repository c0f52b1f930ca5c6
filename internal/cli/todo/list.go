package todo

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
)

// ListCmd returns the todo list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Long: `List todos, newest first. With --project (or $TANDEM_PROJECT) only that
project's todos are listed; --all ignores $TANDEM_PROJECT.`,
		RunE: runList,
	}

	cmd.Flags().String("project", "", "Project ID (defaults to $TANDEM_PROJECT)")
	cmd.Flags().Bool("all", false, "List todos of every project")
	cmd.Flags().String("status", "", "Only show todos with this status")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	all, _ := cmd.Flags().GetBool("all")
	projectID := ""
	if !all {
		projectID = cli.ResolveProject(cmd)
	}

	var statusFilter models.Status
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			return formatter.Fail(err)
		}
		statusFilter = parsed
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	var todos []*models.Todo
	if projectID != "" {
		todos, err = cliInstance.App.TodoService.GetTodosByProject(ctx, projectID)
	} else {
		todos, err = cliInstance.App.TodoService.GetAllTodos(ctx)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	if statusFilter != "" {
		filtered := make([]*models.Todo, 0, len(todos))
		for _, t := range todos {
			if t.Status == statusFilter {
				filtered = append(filtered, t)
			}
		}
		todos = filtered
	}

	return cli.RenderList(formatter, todos, func() error {
		if len(todos) == 0 {
			fmt.Println("No todos found")
			return nil
		}
		fmt.Printf("Found %d todos:\n\n", len(todos))
		now := time.Now()
		for _, t := range todos {
			fmt.Printf("  %s %s\n", styles.RenderTodoLine(t, t.IsOverdue(now)), styles.SubtitleStyle.Render("["+t.ID+"]"))
		}
		return nil
	})
}
