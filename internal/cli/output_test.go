package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/testutil"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

// ============================================================================
// Render / Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		if err := f.Success(mockDataWithID{ID: "abc", Name: "Test"}); err != nil {
			t.Errorf("Success returned error: %v", err)
		}
	})

	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Error("Expected success to be true")
	}
	data := result["data"].(map[string]interface{})
	if data["Name"] != "Test" {
		t.Errorf("Expected data.Name to be 'Test', got %v", data["Name"])
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	output := testutil.CaptureOutput(t, func() {
		_ = f.Success(mockDataWithID{ID: "abc"})
	})
	if strings.TrimSpace(output) != "abc" {
		t.Errorf("Expected bare ID, got %q", output)
	}

	output = testutil.CaptureOutput(t, func() {
		_ = f.Success(mockDataWithoutID{Name: "x"})
	})
	if output != "" {
		t.Errorf("Expected no output for data without ID, got %q", output)
	}
}

func TestOutputFormatter_Render_Human(t *testing.T) {
	f := &OutputFormatter{}
	called := false

	_ = testutil.CaptureOutput(t, func() {
		_ = f.Render(mockDataWithID{ID: "abc"}, func() error {
			called = true
			return nil
		})
	})
	if !called {
		t.Error("Expected human renderer to be called")
	}
}

func TestRenderList(t *testing.T) {
	items := []*models.Project{{ID: "p1"}, {ID: "p2"}}

	output := testutil.CaptureOutput(t, func() {
		_ = RenderList(&OutputFormatter{Quiet: true}, items, nil)
	})
	if output != "p1\np2\n" {
		t.Errorf("Expected one ID per line, got %q", output)
	}

	output = testutil.CaptureOutput(t, func() {
		_ = RenderList(&OutputFormatter{JSON: true}, []*models.Project(nil), nil)
	})
	var decoded struct {
		Data []any `json:"data"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Failed to decode %q: %v", output, err)
	}
	if decoded.Data == nil {
		t.Error("Expected an empty JSON array rather than null")
	}
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		_ = f.ErrorWithSuggestion("NOT_FOUND", "todo missing", "run tandem todo list")
	})

	result := testutil.ParseJSON(t, output)
	if result["success"] != false {
		t.Error("Expected success to be false")
	}
	errData := result["error"].(map[string]interface{})
	if errData["code"] != "NOT_FOUND" || errData["suggestion"] != "run tandem todo list" {
		t.Errorf("Unexpected error payload: %v", errData)
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	cause := fmt.Errorf("lookup: %w", database.ErrNotFound)

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = f.Fail(cause)
	})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ExitError, got %T", err)
	}
	if exitErr.Code != ExitNotFound {
		t.Errorf("Expected exit code %d, got %d", ExitNotFound, exitErr.Code)
	}
	if !errors.Is(err, database.ErrNotFound) {
		t.Error("Expected the cause to stay reachable")
	}
	if !strings.Contains(output, `"NOT_FOUND"`) {
		t.Errorf("Expected NOT_FOUND code in output, got %q", output)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"nil", nil, "", ExitSuccess},
		{"validation", fmt.Errorf("%w: bad", models.ErrInvalidInput), "VALIDATION_ERROR", ExitValidation},
		{"forbidden", policy.Deny(policy.ActionCreate, policy.ResourceTodo), "FORBIDDEN", ExitForbidden},
		{"not found", database.ErrNotFound, "NOT_FOUND", ExitNotFound},
		{"duplicate email", database.ErrDuplicateEmail, "CONFLICT", ExitConflict},
		{"transient", database.ErrTransient, "UNAVAILABLE", ExitTempFail},
		{"relationship", database.ErrRelationshipWrite, "ASSIGNMENT_ERROR", ExitGeneralError},
		{"usage", Usagef("need an id"), "USAGE_ERROR", ExitUsage},
		{"other", errors.New("boom"), "ERROR", ExitGeneralError},
	}

	for _, tt := range tests {
		code, exit := Classify(tt.err)
		if code != tt.code || exit != tt.exit {
			t.Errorf("%s: Classify = (%s, %d), want (%s, %d)", tt.name, code, exit, tt.code, tt.exit)
		}
	}
}

func TestExitCode_UsesExitErrorCode(t *testing.T) {
	err := fmt.Errorf("command failed: %w", NewExitError(ExitDataErr, errors.New("bad fixture")))
	if got := ExitCode(err); got != ExitDataErr {
		t.Errorf("ExitCode = %d, want %d", got, ExitDataErr)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitDataErr {
		t.Errorf("Expected a wrapped *ExitError with code %d, got %v", ExitDataErr, exitErr)
	}
	if got := ExitCode(errors.New("boom")); got != ExitGeneralError {
		t.Errorf("ExitCode(plain) = %d, want %d", got, ExitGeneralError)
	}
}
