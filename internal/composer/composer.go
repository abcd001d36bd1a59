package composer

import (
	"context"
	"strings"
	"time"

	"github.com/hamza49699/physical-ai-textbook/internal/llm"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/hamza49699/physical-ai-textbook/internal/retriever"
)

const (
	ModeExcerpt    = "excerpt"
	ModeGenerative = "generative"

	DefaultTimeout = 20 * time.Second

	excerptHeader   = "**Smart Search Result**\n\n"
	chunkSeparator  = "\n\n---\n\n"
	sourcesTrailer  = "\n\n---\nSources: "
	citationTrailer = "\n\n---\n**Sources**: "

	generationTemperature = 0.3
)

// Composer turns a retrieval result into the answer text shown to the reader.
type Composer interface {
	Compose(ctx context.Context, query string, result *retriever.Result) string
	Mode() string
}

// picks the generative strategy when a generator is available, excerpts otherwise
func New(generator llm.Generator, timeout time.Duration) Composer {
	if generator == nil {
		return Excerpt{}
	}

	return NewGenerative(generator, timeout)
}

// Excerpt quotes the retrieved chunks verbatim.
type Excerpt struct{}

func (Excerpt) Mode() string {
	return ModeExcerpt
}

func (Excerpt) Compose(_ context.Context, _ string, result *retriever.Result) string {
	if result == nil || result.OutOfScope {
		return retriever.OutOfScopeMessage
	}

	return excerpt(result)
}

func excerpt(result *retriever.Result) string {
	contents := make([]string, len(result.Chunks))
	for i, c := range result.Chunks {
		contents[i] = c.Content
	}

	return excerptHeader + strings.Join(contents, chunkSeparator) + sourcesTrailer + strings.Join(result.Sources, ", ")
}

// Generative asks a language model to summarize the chunks and falls back to
// the excerpt text on any failure.
type Generative struct {
	generator llm.Generator
	timeout   time.Duration
}

func NewGenerative(generator llm.Generator, timeout time.Duration) *Generative {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Generative{
		generator: generator,
		timeout:   timeout,
	}
}

func (g *Generative) Mode() string {
	return ModeGenerative
}

func (g *Generative) Compose(ctx context.Context, query string, result *retriever.Result) string {
	if result == nil || result.OutOfScope {
		return retriever.OutOfScopeMessage
	}

	docs := make([]llm.Document, len(result.Chunks))
	for i, c := range result.Chunks {
		docs[i] = llm.Document{Title: c.Citation, Text: c.Content}
	}

	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()

	answer, err := g.generator.Generate(genCtx, llm.GenerateRequest{
		Query:       query,
		Documents:   docs,
		Temperature: generationTemperature,
	})

	answer = strings.TrimSpace(answer)

	if err != nil || answer == "" {
		logger.FromContext(ctx).Warn("generation failed, using excerpts",
			"provider", g.generator.Provider(),
			"model", g.generator.Model(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)

		return excerpt(result)
	}

	return answer + citationTrailer + strings.Join(uniqueInOrder(result.Sources), ", ")
}

func uniqueInOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
