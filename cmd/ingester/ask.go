package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/spf13/cobra"
)

// NewAskCmd runs a question through the same pipeline the chat widget uses
func NewAskCmd() *cobra.Command {
	var chapter int

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the textbook a question",
		Long: `Answer a question from the indexed textbook and render it in the terminal.

Examples:
  ingester ask "What is ROS 2?"
  ingester ask --chapter 2 "How do nodes communicate?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pipeline, closePool, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			var chapterFilter *int
			if cmd.Flags().Changed("chapter") {
				chapterFilter = &chapter
			}

			answer, err := pipeline.Service.Query(ctx, strings.Join(args, " "), chapterFilter)
			if err != nil {
				return err
			}

			return renderAnswer(cmd.OutOrStdout(), answer)
		},
	}

	cmd.Flags().IntVar(&chapter, "chapter", 0, "Chapter the question is about (recorded only)")

	return cmd
}

func renderAnswer(out io.Writer, answer *rag.Answer) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	body, err := renderer.Render(answer.Response)
	if err != nil {
		return fmt.Errorf("failed to render answer: %w", err)
	}

	fmt.Fprintln(out, headerStyle.Render(answer.Query))
	fmt.Fprint(out, body)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("confidence %.2f", answer.Confidence)))

	return nil
}
