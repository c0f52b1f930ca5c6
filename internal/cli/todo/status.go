package todo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
	todoservice "github.com/thenoetrevino/tandem/internal/services/todo"
)

// StatusCmd returns a shortcut subcommand that sets a todo's status to status
func StatusCmd(use, short string, status models.Status) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFor(cmd)

			todoID, err := cli.ResolveID(cmd, args, "todo")
			if err != nil {
				return formatter.Fail(err)
			}

			value := string(status)
			return applyUpdate(cmd, formatter, todoservice.UpdateTodoRequest{ID: todoID, Status: &value}, func(t *models.Todo) {
				fmt.Printf("✓ Todo '%s' is now %s\n", t.Title, styles.StatusBadge(t.Status))
			})
		},
	}

	cmd.Flags().String("id", "", "Todo ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}
