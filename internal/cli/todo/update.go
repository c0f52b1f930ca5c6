package todo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/models"
	todoservice "github.com/thenoetrevino/tandem/internal/services/todo"
)

// UpdateCmd returns the todo update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a todo",
		Long: `Update the given fields of a todo. Omitted flags are left alone;
--due="" and --description="" clear those fields, --project moves the todo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Todo ID (can also be provided as positional argument)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (empty clears it)")
	cmd.Flags().String("due", "", "New due date as YYYY-MM-DD (empty clears it)")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cmd.Flags().String("status", "", "New status: pending, in_progress, completed")
	cmd.Flags().String("project", "", "Move the todo to this project")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	todoID, err := cli.ResolveID(cmd, args, "todo")
	if err != nil {
		return formatter.Fail(err)
	}

	req := todoservice.UpdateTodoRequest{
		ID:          todoID,
		ProjectID:   cli.ChangedString(cmd, "project"),
		Title:       cli.ChangedString(cmd, "title"),
		Description: cli.ChangedString(cmd, "description"),
		DueDate:     cli.ChangedString(cmd, "due"),
		Priority:    cli.ChangedString(cmd, "priority"),
		Status:      cli.ChangedString(cmd, "status"),
	}
	if req == (todoservice.UpdateTodoRequest{ID: todoID}) {
		return formatter.Fail(cli.Usagef("nothing to update: pass at least one field flag"))
	}

	return applyUpdate(cmd, formatter, req, func(t *models.Todo) {
		fmt.Printf("✓ Todo '%s' updated successfully\n", t.Title)
	})
}

// applyUpdate runs req against the todo service and renders the result
func applyUpdate(cmd *cobra.Command, formatter *cli.OutputFormatter, req todoservice.UpdateTodoRequest, human func(*models.Todo)) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	todo, err := cliInstance.App.TodoService.UpdateTodo(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(todo, func() error {
		human(todo)
		return nil
	})
}
