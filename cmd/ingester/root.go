package main

import (
	"context"
	"fmt"

	"github.com/hamza49699/physical-ai-textbook/internal/app"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd wires the ingester subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingester",
		Short: "Manage the textbook knowledge base",
		Long: `Load textbook markdown into the knowledge base and inspect it.

Uses the same DATABASE_URL, VECTOR_BACKEND and generator settings as the server.

Examples:
  ingester docs --path ./docs
  ingester documents --limit 50
  ingester ask "What is ROS 2?"`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewDocsCmd(),
		NewResetCmd(),
		NewDocumentsCmd(),
		NewAskCmd(),
	)

	return cmd
}

// loads configuration and opens the pipeline. callers must invoke the returned close func.
func openPipeline(ctx context.Context) (*app.Pipeline, func(), error) {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	pool, err := app.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("connected to database")

	pipeline, err := app.NewPipeline(ctx, cfg, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return pipeline, pool.Close, nil
}
