// Package todo holds all cli commands related to todos
//
// e.g., tandem todo ...
package todo

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/models"
)

// TodoCmd returns the todo parent command
func TodoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage todos",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(StatusCmd("start", "Mark a todo as in progress", models.StatusInProgress))
	cmd.AddCommand(StatusCmd("done", "Mark a todo as completed", models.StatusCompleted))
	cmd.AddCommand(StatusCmd("reopen", "Mark a todo as pending again", models.StatusPending))

	return cmd
}
