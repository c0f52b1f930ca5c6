package user

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	userservice "github.com/thenoetrevino/tandem/internal/services/user"
)

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Long: `Create a new user. Emails are unique.

Examples:
  tandem user create --name="Ada Lovelace" --email=ada@example.com
  USER_ID=$(tandem user create --name=Bob --email=bob@example.com --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Display name (required)")
	cmd.Flags().String("email", "", "Email address (required)")
	for _, name := range []string{"name", "email"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}
	cmd.Flags().String("avatar-url", "", "Avatar image URL")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	avatar, _ := cmd.Flags().GetString("avatar-url")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	user, err := cliInstance.App.UserService.CreateUser(ctx, userservice.CreateUserRequest{
		Name:      name,
		Email:     email,
		AvatarURL: avatar,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(user, func() error {
		fmt.Printf("✓ User '%s' <%s> created successfully (ID: %s)\n", user.Name, user.Email, user.ID)
		return nil
	})
}
