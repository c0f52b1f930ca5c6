package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ProjectEnv names the environment variable `tandem use project` exports
const ProjectEnv = "TANDEM_PROJECT"

// ResolveID returns the positional ID argument, or the --id flag when no argument was given
func ResolveID(cmd *cobra.Command, args []string, what string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if cmd.Flags().Lookup("id") != nil {
		if id, _ := cmd.Flags().GetString("id"); strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id), nil
		}
	}
	return "", Usagef("%s ID required\nUsage: %s <id> or --id=<id>", what, cmd.CommandPath())
}

// ResolveProject returns the --project flag, falling back to $TANDEM_PROJECT
func ResolveProject(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("project"); strings.TrimSpace(p) != "" {
		return strings.TrimSpace(p)
	}
	return strings.TrimSpace(os.Getenv(ProjectEnv))
}

// ChangedString returns a pointer to the flag value when the flag was set explicitly
func ChangedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// Confirm asks a yes/no question on stdout and reads the answer from stdin
func Confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// Close closes c and logs a failure instead of masking the command's own result
func Close(c *CLI) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing CLI: %v\n", err)
	}
}
