package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hamza49699/physical-ai-textbook/internal/chunker"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/spf13/cobra"
)

const (
	// chapter for tutorials and other pages outside the numbered modules
	extraChapter = 99

	introSectionLimit = 2000
	sectionLimit      = 4000
)

var moduleNumber = regexp.MustCompile(`module-(\d+)`)

type docsOptions struct {
	path    string
	noReset bool
}

// NewDocsCmd ingests every markdown page under a docs directory
func NewDocsCmd() *cobra.Command {
	opts := docsOptions{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Ingest textbook markdown files",
		Long: `Walk a docs directory and ingest every .md/.mdx page section by section.

The chapter comes from a "module-<n>" filename, intro pages are chapter 0 and
everything else is chapter 99. The knowledge base is reset first unless
--no-reset is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.path, "path", "docs", "Directory containing textbook markdown")
	cmd.Flags().BoolVar(&opts.noReset, "no-reset", false, "Keep existing content instead of resetting first")

	return cmd
}

func runDocs(cmd *cobra.Command, opts docsOptions) error {
	ctx := cmd.Context()

	files, loadErrs := chunker.LoadMarkdownDir(opts.path)
	for _, err := range loadErrs {
		logger.Warn("skipping file", "error", err)
	}

	docs := buildDocuments(files)
	if len(docs) == 0 {
		return fmt.Errorf("no sections found under %s", opts.path)
	}

	pipeline, closePool, err := openPipeline(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	if !opts.noReset {
		if err := pipeline.Service.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset knowledge base: %w", err)
		}

		logger.Info("knowledge base reset")
	}

	var ingested, failed, chunks int

	for _, doc := range docs {
		result, err := pipeline.Service.Ingest(ctx, doc)
		if err != nil {
			failed++
			logger.ErrorErr(err, "failed to ingest section",
				"title", doc.Title,
				"section", doc.Section,
			)
			continue
		}

		ingested++
		chunks += result.ChunksCreated
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested: %s / %s (%d chunks)\n", doc.Title, chunker.Truncate(doc.Section, 30), result.ChunksCreated)
	}

	// verify insertion
	total, err := pipeline.Store.GetChunkCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify chunk count: %w", err)
	}

	logger.Info("docs ingestion finished",
		"files", len(files),
		"sections", ingested,
		"failed", failed,
		"chunks", chunks,
		"total_chunks", total,
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d sections failed to ingest", failed, len(docs))
	}

	return nil
}

// turns markdown pages into one document per section
func buildDocuments(files []chunker.SourceFile) []rag.Document {
	var docs []rag.Document

	for _, file := range files {
		chapter := chapterFromName(file.Name)

		title := titleFromName(file.Name)
		if fmTitle, ok := file.Frontmatter["title"].(string); ok && strings.TrimSpace(fmTitle) != "" {
			title = strings.TrimSpace(fmTitle)
		}

		for _, section := range file.Sections {
			limit := sectionLimit
			if section.Leading {
				limit = introSectionLimit
			}

			docs = append(docs, rag.Document{
				Title:   title,
				Chapter: chapter,
				Section: section.Title,
				Content: chunker.Truncate(section.Content, limit),
			})
		}
	}

	return docs
}

func chapterFromName(name string) int {
	if m := moduleNumber.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	if strings.Contains(name, "intro") {
		return 0
	}

	return extraChapter
}

// "module-1-ros2.md" -> "Module 1 Ros2"
func titleFromName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(base))

	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
