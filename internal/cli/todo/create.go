package todo

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	todoservice "github.com/thenoetrevino/tandem/internal/services/todo"
)

// CreateCmd returns the todo create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new todo",
		Long: `Create a new todo inside a project.

The project defaults to $TANDEM_PROJECT (see 'tandem use project').

Examples:
  tandem todo create --project=3f2a... --title="Write release notes"
  tandem todo create --title="Fix login" --priority=high --due=2026-03-01
  TODO_ID=$(tandem todo create --title="Ship it" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Todo title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("project", "", "Project ID (defaults to $TANDEM_PROJECT)")
	cmd.Flags().String("description", "", "Description (markdown)")
	cmd.Flags().String("due", "", "Due date as YYYY-MM-DD")
	cmd.Flags().String("priority", "", "Priority: low, medium, high (default medium)")
	cmd.Flags().String("status", "", "Status: pending, in_progress, completed (default pending)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID := cli.ResolveProject(cmd)
	if projectID == "" {
		return formatter.FailWithSuggestion(cli.Usagef("project required"),
			"Pass --project or run 'eval $(tandem use project <id>)'")
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	due, _ := cmd.Flags().GetString("due")
	priority, _ := cmd.Flags().GetString("priority")
	status, _ := cmd.Flags().GetString("status")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	todo, err := cliInstance.App.TodoService.CreateTodo(ctx, todoservice.CreateTodoRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		DueDate:     due,
		Priority:    priority,
		Status:      status,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(todo, func() error {
		fmt.Printf("✓ Todo '%s' created successfully (ID: %s)\n", todo.Title, todo.ID)
		fmt.Printf("  %s %s\n", styles.PriorityBadge(todo.Priority), styles.StatusBadge(todo.Status))
		return nil
	})
}
