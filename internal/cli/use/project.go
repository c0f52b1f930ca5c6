package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/cli"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(tandem use project 3f2a...)        # Use a project
  eval $(tandem use project --clear)        # Clear project context
  tandem use project --show                 # Show current project

The TANDEM_PROJECT environment variable will be set in your current shell
session only. The --project flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if showFlag {
		return showCurrentProject(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", cli.ProjectEnv)
			return nil
		}
		fmt.Printf("unset %s\n", cli.ProjectEnv)
		fmt.Fprintf(os.Stderr, "Cleared project context\n")
		return nil
	}

	if len(args) == 0 {
		return formatter.Fail(cli.Usagef("project ID required\nUsage: eval $(tandem use project <project-id>)"))
	}

	ctx := cmd.Context()
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cli.Close(cliInstance)

	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'tandem project list' to see available projects")
	}

	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%s (%s)\n", cli.ProjectEnv, project.ID, project.Name)
		return nil
	}

	fmt.Printf("export %s=%s\n", cli.ProjectEnv, project.ID)
	fmt.Fprintf(os.Stderr, "Now using project %s: %s\n", project.ID, project.Name)

	return nil
}

func showCurrentProject(cmd *cobra.Command) error {
	currentProject := os.Getenv(cli.ProjectEnv)
	if currentProject == "" {
		fmt.Println("No project context set")
		fmt.Println("Use 'eval $(tandem use project <project-id>)' to set one")
		return nil
	}

	ctx := cmd.Context()
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.FormatterFor(cmd).Fail(err)
	}
	defer cli.Close(cliInstance)

	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, currentProject)
	if err != nil {
		fmt.Printf("Current project: %s (project not found)\n", currentProject)
		return nil
	}

	fmt.Printf("Current project: %s (%s)\n", project.ID, project.Name)
	return nil
}
