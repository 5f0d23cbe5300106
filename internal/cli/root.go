// Package cli wires the geomet subcommands: collections discovery, feature
// fetch, file export, and chart rendering.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/config"
	"github.com/geomet-tools/geomet-catalog/internal/geomet"
	"github.com/geomet-tools/geomet-catalog/internal/observability"
)

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the geomet command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "geomet",
		Short:         "Browse, fetch, export, and chart MSC GeoMet weather data",
		Long:          "geomet is a client for the MSC GeoMet OGC API (https://api.weather.gc.ca):\ndiscover collections, fetch filtered features, export them to CSV or GeoJSON,\nand render PNG charts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewCollectionsCommand())
	cmd.AddCommand(NewFetchCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewVisualizeCommand())
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

// newClient loads configuration and builds the API client every command
// shares. Each invocation owns its client; nothing is shared across runs.
func newClient() (*geomet.Client, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := observability.NewLogger(cfg)
	return geomet.NewClient(cfg.Endpoint, cfg.UserAgent, cfg.Timeout, logger), logger, nil
}
