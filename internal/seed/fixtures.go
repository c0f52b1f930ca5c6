// Package seed loads sample data into a tandem database
package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/thenoetrevino/tandem/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

const schemaURL = "https://tandem.local/schema/seed.json"

// Fixtures is the decoded form of a seed file
type Fixtures struct {
	Projects []ProjectFixture `json:"projects"`
	Users    []UserFixture    `json:"users"`
	Todos    []TodoFixture    `json:"todos"`
}

// ProjectFixture describes one project. Without an ID, projects are matched by name.
type ProjectFixture struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// UserFixture describes one user. Users are matched by email.
type UserFixture struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// TodoFixture describes one todo. Todos are matched by title within their project.
// DueInDays is relative to the day the seed runs; Assignees are user emails.
type TodoFixture struct {
	ID          string   `json:"id,omitempty"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	DueInDays   *int     `json:"due_in_days,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	Assignees   []string `json:"assignees,omitempty"`
}

// ValidationError lists every schema violation of a fixtures file
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid seed file: " + strings.Join(e.Problems, "; ")
}

// Unwrap lets callers match the error against models.ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return models.ErrInvalidInput
}

// Default returns the built-in sample data
func Default() (*Fixtures, error) {
	data, err := dataFS.ReadFile("data/default.json")
	if err != nil {
		return nil, fmt.Errorf("read default fixtures: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and validates the fixtures file at path
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the seed schema and decodes it
func Parse(data []byte) (*Fixtures, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("malformed JSON: %v", err)}}
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, &ValidationError{Problems: collectProblems(ve, nil)}
		}
		return nil, fmt.Errorf("validate seed file: %w", err)
	}

	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// decodeDocument decodes data into the generic form the validator expects.
// Numbers stay json.Number so integer checks see the literal value.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return doc, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := dataFS.ReadFile("data/schema.json")
	if err != nil {
		return nil, fmt.Errorf("read seed schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load seed schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return schema, nil
}

// collectProblems flattens the leaf causes of a validation error
func collectProblems(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return append(out, fmt.Sprintf("%s: %s", location, ve.Message))
	}
	for _, cause := range ve.Causes {
		out = collectProblems(cause, out)
	}
	return out
}
