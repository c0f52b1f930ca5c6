package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/cli/styles"
	"github.com/thenoetrevino/tandem/internal/models"
)

// ShowCmd returns the user show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a user and the todos assigned to them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "User ID (can also be provided as positional argument)")
	cmd.Flags().String("email", "", "Look the user up by email instead of ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	email, _ := cmd.Flags().GetString("email")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	var user *models.User
	if email != "" {
		user, err = cliInstance.App.UserService.GetUserByEmail(ctx, email)
	} else {
		var userID string
		if userID, err = cli.ResolveID(cmd, args, "user"); err != nil {
			return formatter.Fail(err)
		}
		user, err = cliInstance.App.UserService.GetUserByID(ctx, userID)
	}
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'tandem user list' to see available users")
	}

	view := &models.UserWithTodos{User: *user, Todos: []*models.Todo{}}
	everyone, err := cliInstance.App.AssignmentService.GetUsersWithTodos(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	for _, u := range everyone {
		if u.ID == user.ID {
			view = u
			break
		}
	}

	return formatter.Render(view, func() error {
		var content strings.Builder
		content.WriteString(styles.TitleStyle.Render(view.Name) + " " + styles.SubtitleStyle.Render("<"+view.Email+">"))
		content.WriteString("\n")
		content.WriteString(styles.SubtitleStyle.Render(view.ID))
		content.WriteString("\n")
		if view.AvatarURL != nil {
			content.WriteString(fmt.Sprintf("%s %s\n", styles.LabelStyle.Render("Avatar:"), styles.ValueStyle.Render(*view.AvatarURL)))
		}

		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Assigned todos (%d)", len(view.Todos))))
		content.WriteString("\n")
		now := time.Now()
		for _, t := range view.Todos {
			content.WriteString("  " + styles.RenderTodoLine(t, t.IsOverdue(now)) + "\n")
		}
		if len(view.Todos) == 0 {
			content.WriteString("  " + styles.SubtitleStyle.Render("Nothing assigned") + "\n")
		}

		fmt.Println(styles.RenderCard(strings.TrimRight(content.String(), "\n")))
		return nil
	})
}
