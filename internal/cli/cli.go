// Package cli holds the shared plumbing for tandem's cobra commands: app lookup,
// output formatting and exit codes.
package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tandem/internal/app"
	"github.com/thenoetrevino/tandem/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	// owned is false when the App came from the context and belongs to the caller
	owned bool
}

// NewCLI opens the application with the configuration from ctx, loading it when absent
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, ok := ConfigFromContext(ctx)
	if !ok {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{
		App:    application,
		Config: cfg,
		owned:  true,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
