package assign

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
)

// WorkloadCmd returns the workload command
func WorkloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Show each user's assigned todos by status",
		RunE:  runWorkload,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runWorkload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	workloads, err := cliInstance.App.AssignmentService.GetUserWorkloads(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return cli.RenderList(formatter, workloads, func() error {
		if len(workloads) == 0 {
			fmt.Println("No users found")
			return nil
		}
		for _, w := range workloads {
			fmt.Printf("%s %s  %s %d  %s %d  %s %d\n",
				styles.TitleStyle.Render(w.User.Name),
				styles.SubtitleStyle.Render("<"+w.User.Email+">"),
				styles.LabelStyle.Render("pending"), len(w.Pending),
				styles.LabelStyle.Render("in progress"), len(w.InProgress),
				styles.LabelStyle.Render("done"), len(w.Completed))
			for _, t := range w.InProgress {
				fmt.Printf("    %s\n", styles.RenderTodoLine(t, false))
			}
		}
		return nil
	})
}
