package project

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/tandem/internal/cli"
	"github.com/thenoetrevino/tandem/internal/testutil"
	cliutil "github.com/thenoetrevino/tandem/internal/testutil/cli"
)

func TestCreateProjectCommand(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)

	tests := []struct {
		name      string
		args      []string
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "quiet prints the generated ID",
			args: []string{"--name", "My Project", "--quiet"},
			checkFunc: func(t *testing.T, output string) {
				if strings.TrimSpace(output) == "" || strings.Contains(output, " ") {
					t.Errorf("Expected a bare ID, got %q", output)
				}
			},
		},
		{
			name: "json output",
			args: []string{"--name", "JSON Project", "--color", "#10B981", "--json"},
			checkFunc: func(t *testing.T, output string) {
				result := testutil.ParseJSON(t, output)
				if result["success"] != true {
					t.Error("Expected success=true in JSON output")
				}
				data := result["data"].(map[string]interface{})
				if data["color"] != "#10B981" {
					t.Errorf("Expected color #10B981, got %v", data["color"])
				}
			},
		},
		{
			name: "human-readable output",
			args: []string{"--name", "Human Project", "--description", "Test"},
			checkFunc: func(t *testing.T, output string) {
				if !strings.Contains(output, "created successfully") {
					t.Errorf("Output missing success message: %q", output)
				}
				if !strings.Contains(output, "Description: Test") {
					t.Errorf("Output missing description: %q", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cliutil.ExecuteCLICommand(t, testApp, CreateCmd(), tt.args)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.checkFunc(t, output)
		})
	}
}

func TestCreateProjectCommand_InvalidColor(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)

	_, err := cliutil.ExecuteCLICommand(t, testApp, CreateCmd(), []string{"--name", "x", "--color", "red", "--quiet"})
	if cli.ExitCode(err) != cli.ExitValidation {
		t.Fatalf("Expected exit code %d, got %d (%v)", cli.ExitValidation, cli.ExitCode(err), err)
	}
}

func TestListProjectsCommand(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	a := testutil.CreateTestProject(t, testApp.Repo(), "Alpha")
	b := testutil.CreateTestProject(t, testApp.Repo(), "Beta")
	testutil.CreateTestTodo(t, testApp.Repo(), a.ID, "task")

	output, err := cliutil.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--quiet"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Fields(output)
	if len(lines) != 2 || lines[0] != b.ID || lines[1] != a.ID {
		t.Errorf("Expected newest first [%s %s], got %v", b.ID, a.ID, lines)
	}

	output, err = cliutil.ExecuteCLICommand(t, testApp, ListCmd(), []string{"--stats", "--json"})
	if err != nil {
		t.Fatalf("list --stats failed: %v", err)
	}
	result := testutil.ParseJSON(t, output)
	rows := result["data"].([]interface{})
	counts := map[string]float64{}
	for _, row := range rows {
		m := row.(map[string]interface{})
		counts[m["name"].(string)] = m["todo_count"].(float64)
	}
	if counts["Alpha"] != 1 || counts["Beta"] != 0 {
		t.Errorf("Unexpected todo counts: %v", counts)
	}
}

func TestShowProjectCommand(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	p := testutil.CreateTestProject(t, testApp.Repo(), "Garden")
	testutil.CreateTestTodo(t, testApp.Repo(), p.ID, "Plant tomatoes")

	output, err := cliutil.ExecuteCLICommand(t, testApp, ShowCmd(), []string{p.ID})
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(output, "Garden") || !strings.Contains(output, "Plant tomatoes") {
		t.Errorf("Expected project and todo in output, got %q", output)
	}

	_, err = cliutil.ExecuteCLICommand(t, testApp, ShowCmd(), []string{"missing", "--quiet"})
	if cli.ExitCode(err) != cli.ExitNotFound {
		t.Errorf("Expected not found exit code, got %d (%v)", cli.ExitCode(err), err)
	}

	_, err = cliutil.ExecuteCLICommand(t, testApp, ShowCmd(), []string{"--quiet"})
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("Expected usage exit code, got %d (%v)", cli.ExitCode(err), err)
	}
}

func TestUpdateProjectCommand(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	p := testutil.CreateTestProject(t, testApp.Repo(), "Old")

	_, err := cliutil.ExecuteCLICommand(t, testApp, UpdateCmd(), []string{p.ID, "--name", "New", "--quiet"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := testApp.Repo().GetProjectByID(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "New" {
		t.Errorf("Expected name 'New', got %q", got.Name)
	}

	_, err = cliutil.ExecuteCLICommand(t, testApp, UpdateCmd(), []string{p.ID, "--quiet"})
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("Expected usage error when nothing changes, got %v", err)
	}
}

func TestDeleteProjectCommand(t *testing.T) {
	_, testApp := cliutil.SetupCLITest(t)
	p := testutil.CreateTestProject(t, testApp.Repo(), "Doomed")

	output, err := cliutil.ExecuteCLICommand(t, testApp, DeleteCmd(), []string{p.ID, "--force"})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(output, "deleted successfully") {
		t.Errorf("Expected success message, got %q", output)
	}

	_, err = testApp.Repo().GetProjectByID(context.Background(), p.ID)
	if err == nil {
		t.Error("Expected project to be gone")
	}

	_, err = cliutil.ExecuteCLICommand(t, testApp, DeleteCmd(), []string{p.ID, "--force", "--quiet"})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitNotFound {
		t.Errorf("Expected not-found exit error on second delete, got %v", err)
	}
}
