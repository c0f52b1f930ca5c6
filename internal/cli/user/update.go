package user

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
	userservice "github.com/thenoetrevino/tandem/internal/services/user"
)

// UpdateCmd returns the user update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a user",
		Long:  `Update the given fields of a user. Omitted flags are left alone; --avatar-url="" clears the avatar.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("id", "", "User ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().String("email", "", "New email address")
	cmd.Flags().String("avatar-url", "", "New avatar URL (empty clears it)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	userID, err := cli.ResolveID(cmd, args, "user")
	if err != nil {
		return formatter.Fail(err)
	}

	req := userservice.UpdateUserRequest{
		ID:        userID,
		Name:      cli.ChangedString(cmd, "name"),
		Email:     cli.ChangedString(cmd, "email"),
		AvatarURL: cli.ChangedString(cmd, "avatar-url"),
	}
	if req.Name == nil && req.Email == nil && req.AvatarURL == nil {
		return formatter.Fail(cli.Usagef("nothing to update: pass --name, --email or --avatar-url"))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	user, err := cliInstance.App.UserService.UpdateUser(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Render(user, func() error {
		fmt.Printf("✓ User '%s' updated successfully\n", user.Name)
		return nil
	})
}
