// Command server runs the tandem HTTP API
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tandem/internal/api"
	"github.com/thenoetrevino/tandem/internal/app"
	"github.com/thenoetrevino/tandem/internal/config"
	"github.com/thenoetrevino/tandem/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := newServerCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tandem-server",
		Short:        "Serve the tandem HTTP API",
		SilenceUsage: true,
		RunE:         runServer,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().Bool("read-only", false, "Reject every write")
	cmd.Flags().Bool("log-stderr", false, "Log to stderr instead of the configured file")

	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if readOnly, _ := cmd.Flags().GetBool("read-only"); readOnly {
		cfg.Server.ReadOnly = true
	}
	if toStderr, _ := cmd.Flags().GetBool("log-stderr"); toStderr {
		cfg.Log.File = ""
	}

	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.Open(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	slog.Info("tandem api starting",
		"addr", cfg.Server.Addr,
		"driver", cfg.Database.Driver,
		"read_only", cfg.Server.ReadOnly,
		"pid", os.Getpid())

	if err := api.Serve(ctx, application, cfg.Server); err != nil {
		return err
	}

	slog.Info("tandem api shut down gracefully")
	return nil
}
