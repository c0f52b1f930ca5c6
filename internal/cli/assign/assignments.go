package assign

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
)

// AssignmentsCmd returns the assignments command
func AssignmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignments [todo-id]",
		Short: "List the assignments of a todo",
		Long:  "List the assignment records of a todo in the order they were made.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAssignments,
	}

	cmd.Flags().String("id", "", "Todo ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAssignments(cmd *cobra.Command, args []string) error {
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
		return formatter.Fail(err)
	}

	// quiet prints assignee ids, one per line
	if formatter.Quiet {
		for _, u := range view.AssignedUsers {
			fmt.Println(u.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.Success(view.Assignments)
	}

	names := make(map[string]string, len(view.AssignedUsers))
	for _, u := range view.AssignedUsers {
		names[u.ID] = u.Name
	}

	if len(view.Assignments) == 0 {
		fmt.Printf("'%s' has no assignees\n", view.Title)
		return nil
	}
	fmt.Printf("'%s' has %d assignees:\n\n", view.Title, len(view.Assignments))
	for _, a := range view.Assignments {
		fmt.Printf("  %s %s %s\n",
			styles.ValueStyle.Render(names[a.UserID]),
			styles.SubtitleStyle.Render("["+a.UserID+"]"),
			styles.LabelStyle.Render("since "+a.AssignedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}
