// Package assign holds the cli commands that manage todo assignments
//
// e.g., tandem assign ..., tandem board, tandem workload
package assign

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/forms"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
	assignmentservice "github.com/thenoetrevino/tandem/internal/services/assignment"
)

// AssignCmd returns the assign command
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign [todo-id]",
		Short: "Set the users assigned to a todo",
		Long: `Replace the full set of users assigned to a todo.

Users can be given by ID or email. The new set replaces the old one;
--clear removes every assignee and --interactive opens a picker.

Examples:
  tandem assign 3f2a... --user alice@example.com --user 9c1e...
  tandem assign 3f2a... --clear
  tandem assign 3f2a... --interactive
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAssign,
	}

	cmd.Flags().String("id", "", "Todo ID (can also be provided as positional argument)")
	cmd.Flags().StringSlice("user", nil, "User ID or email to assign (repeatable)")
	cmd.Flags().Bool("clear", false, "Remove all assignees")
	cmd.Flags().BoolP("interactive", "i", false, "Pick assignees interactively")
	cmd.MarkFlagsMutuallyExclusive("user", "clear", "interactive")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	todoID, err := cli.ResolveID(cmd, args, "todo")
	if err != nil {
		return formatter.Fail(err)
	}

	refs, _ := cmd.Flags().GetStringSlice("user")
	clearAll, _ := cmd.Flags().GetBool("clear")
	interactive, _ := cmd.Flags().GetBool("interactive")
	if len(refs) == 0 && !clearAll && !interactive {
		return formatter.Fail(cli.Usagef("pass --user, --clear or --interactive"))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	var userIDs []string
	switch {
	case clearAll:
		userIDs = []string{}
	case interactive:
		userIDs, err = pickUsers(ctx, cliInstance, todoID)
	default:
		userIDs, err = resolveUsers(ctx, cliInstance, refs)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	view, err := cliInstance.App.AssignmentService.AssignUsers(ctx, assignmentservice.AssignUsersRequest{
		TodoID:  todoID,
		UserIDs: userIDs,
	})
	if err != nil {
		return formatter.FailWithSuggestion(err, "Check the IDs with 'tandem todo list' and 'tandem user list'")
	}

	return formatter.Render(view, func() error {
		fmt.Printf("✓ '%s' is assigned to %s\n", view.Title, styles.RenderUserChips(view.AssignedUsers))
		return nil
	})
}

// resolveUsers turns user references into ids, looking up anything containing '@' by email
func resolveUsers(ctx context.Context, c *cli.CLI, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if !strings.Contains(ref, "@") {
			ids = append(ids, ref)
			continue
		}
		u, err := c.App.UserService.GetUserByEmail(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func pickUsers(ctx context.Context, c *cli.CLI, todoID string) ([]string, error) {
	current, err := c.App.AssignmentService.GetTodoWithAssignments(ctx, todoID)
	if err != nil {
		return nil, err
	}
	users, err := c.App.UserService.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: no users exist yet, create one with 'tandem user create'", models.ErrInvalidInput)
	}

	selected := current.AssignedUserIDs()
	form := forms.CreateAssignForm(current.Title, users, &selected).
		WithTheme(forms.Theme(styles.Scheme()))
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
