package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCmd empties the vector collection and the relational tables
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Recreate the vector collection and clear all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pipeline, closePool, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			if err := pipeline.Service.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset knowledge base: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Knowledge base reset."))
			return nil
		},
	}
}
