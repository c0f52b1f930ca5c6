package use

import (
	"strings"
	"testing"

	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/testutil"
	cliutil "github.com/thenoetrevino/tandem/internal/testutil/cli"
)

func TestUseProject_Export(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	p := testutil.CreateTestProject(t, testApp.Repo(), "Backend")

	output, err := cliutil.ExecuteCLICommand(t, testApp, ProjectCmd(), []string{strings.ToUpper(p.ID)})
	if err != nil {
		t.Fatalf("use project failed: %v", err)
	}

	want := "export TANDEM_PROJECT=" + p.ID
	if strings.TrimSpace(output) != want {
		t.Errorf("Expected %q, got %q", want, output)
	}
}

func TestUseProject_UnknownProject(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)

	output, err := cliutil.ExecuteCLICommand(t, testApp, ProjectCmd(), []string{"missing"})
	if code := cli.ExitCode(err); code != cli.ExitNotFound {
		t.Errorf("Expected exit code %d, got %d", cli.ExitNotFound, code)
	}
	if strings.Contains(output, "export") {
		t.Errorf("Expected no export on failure, got %q", output)
	}
}

func TestUseProject_ClearAndShow(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	p := testutil.CreateTestProject(t, testApp.Repo(), "Frontend")

	output, err := cliutil.ExecuteCLICommand(t, testApp, ProjectCmd(), []string{"--clear"})
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if strings.TrimSpace(output) != "unset TANDEM_PROJECT" {
		t.Errorf("Unexpected clear output %q", output)
	}

	t.Setenv(cli.ProjectEnv, p.ID)
	output, err = cliutil.ExecuteCLICommand(t, testApp, ProjectCmd(), []string{"--show"})
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(output, "Frontend") {
		t.Errorf("Expected project name in %q", output)
	}
}

func TestUseProject_MissingArg(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)

	_, err := cliutil.ExecuteCLICommand(t, testApp, ProjectCmd(), []string{})
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("Expected exit code %d, got %d", cli.ExitUsage, code)
	}
}
