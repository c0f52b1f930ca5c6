package user

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
)

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	users, err := cliInstance.App.UserService.GetAllUsers(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return cli.RenderList(formatter, users, func() error {
		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}
		fmt.Printf("Found %d users:\n\n", len(users))
		for _, u := range users {
			fmt.Printf("  %s %s <%s> %s\n",
				styles.LabelStyle.Render("("+u.Initial()+")"),
				u.Name, u.Email,
				styles.SubtitleStyle.Render("["+u.ID+"]"))
		}
		return nil
	})
}
