package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
	"github.com/spf13/cobra"
)

// NewDocumentsCmd lists the most recently ingested sections
func NewDocumentsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List ingested chapter/section pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pipeline, closePool, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			docs, err := pipeline.Service.Documents(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}

			if err := printDocuments(cmd.OutOrStdout(), docs); err != nil {
				return err
			}

			chunks, err := pipeline.Store.GetChunkCount(ctx)
			if err != nil {
				return err
			}

			sessions, err := pipeline.Store.GetSessionCount(ctx)
			if err != nil {
				return err
			}

			return printTotals(cmd.OutOrStdout(), chunks, sessions)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", rag.DefaultDocumentsLimit, "Maximum documents to list (1-100)")

	return cmd
}

func printDocuments(out io.Writer, docs []storage.DocumentSummary) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(out, mutedStyle.Render("No documents ingested yet."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHAPTER\tSECTION\tINGESTED")

	for _, doc := range docs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", doc.ID, doc.Chapter, doc.Section, doc.CreatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

func printTotals(out io.Writer, chunks, sessions int) error {
	_, err := fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d chunks indexed, %d questions answered", chunks, sessions)))
	return err
}
