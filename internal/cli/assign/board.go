package assign

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show todos grouped by status with their assignees",
		Long: `Show every todo with its assignees, grouped into pending, in progress
and completed. --project (or $TANDEM_PROJECT) narrows it to one project.`,
		RunE: runBoard,
	}

	cmd.Flags().String("project", "", "Project ID (defaults to $TANDEM_PROJECT)")
	cmd.Flags().Bool("all", false, "Show every project even when $TANDEM_PROJECT is set")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID := ""
	if all, _ := cmd.Flags().GetBool("all"); !all {
		projectID = cli.ResolveProject(cmd)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	todos, err := cliInstance.App.AssignmentService.GetTodosWithAssignments(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}

	return cli.RenderList(formatter, todos, func() error {
		if len(todos) == 0 {
			fmt.Println("No todos found")
			return nil
		}
		now := time.Now()
		for _, status := range models.Statuses {
			fmt.Println(styles.SectionStyle.Render(status.Label()))
			count := 0
			for _, t := range todos {
				if t.Status != status {
					continue
				}
				count++
				fmt.Printf("  %s  %s\n", styles.RenderTodoLine(&t.Todo, t.IsOverdue(now)), styles.RenderUserChips(t.AssignedUsers))
			}
			if count == 0 {
				fmt.Println(styles.SubtitleStyle.Render("  (none)"))
			}
		}
		return nil
	})
}
