package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// identifiable is implemented by every model so quiet mode can print bare IDs
type identifiable interface {
	GetID() string
}

// OutputFormatter renders command results as JSON, bare IDs or styled text
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFor builds a formatter from the --json and --quiet flags of cmd
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data interface{}) error {
	return f.Render(data, func() error { return f.prettyPrint(data) })
}

// Render outputs data in JSON or quiet mode, or calls human for the readable form.
// Quiet mode prints the ID of data when it has one.
func (f *OutputFormatter) Render(data interface{}, human func() error) error {
	if f.Quiet {
		f.printIDs(data)
		return nil
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	return human()
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	if f.Quiet {
		fmt.Fprintln(os.Stderr, message)
		return nil
	}

	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the selected mode and returns it as an *ExitError
func (f *OutputFormatter) Fail(err error) error {
	return f.FailWithSuggestion(err, "")
}

// FailWithSuggestion is Fail with a hint for the user
func (f *OutputFormatter) FailWithSuggestion(err error, suggestion string) error {
	code, exit := Classify(err)
	_ = f.ErrorWithSuggestion(code, err.Error(), suggestion)
	return NewExitError(exit, err)
}

func (f *OutputFormatter) printIDs(data interface{}) {
	if v, ok := data.(identifiable); ok {
		fmt.Println(v.GetID())
	}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data interface{}) error {
	fmt.Printf("%+v\n", data)
	return nil
}

// RenderList is Render for a slice of models. Quiet mode prints one ID per line
// and JSON mode always encodes an array, even when items is empty.
func RenderList[T identifiable](f *OutputFormatter, items []T, human func() error) error {
	if items == nil {
		items = []T{}
	}
	if f.Quiet {
		for _, item := range items {
			fmt.Println(item.GetID())
		}
		return nil
	}
	return f.Render(items, human)
}
