// Package use holds all cli commands related to setting contextual information
// e.g., tandem use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Set contextual defaults for the current shell",
		Long: `Set contextual defaults that other commands fall back to.

Available contexts:
  - project: Set the current project context

Examples:
  eval $(tandem use project 3f2a...)   # Use a project
  eval $(tandem use project --clear)   # Clear project context
  tandem use project --show            # Show current project`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
