package llm

import (
	"context"
	"errors"
)

// represents different generation providers
type Provider string

const (
	ProviderCohere Provider = "cohere"
	ProviderOpenAI Provider = "openai"
)

// returned by NewGenerator when no provider has a usable api key
var ErrNoProvider = errors.New("no generation provider configured")

// produces an answer grounded in the supplied documents
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Provider() Provider
	Model() string
}

// a retrieved chunk handed to the model, titled with its citation
type Document struct {
	Title string
	Text  string
}

type GenerateRequest struct {
	Query       string
	Documents   []Document
	Temperature float32
}

// holds configuration for generator selection
type Config struct {
	// empty picks the first provider with a key, cohere first
	Provider Provider

	CohereAPIKey  string
	CohereModel   string // e.g., "command-r-plus"
	CohereBaseURL string

	OpenAIAPIKey  string
	OpenAIModel   string // e.g., "gpt-4o-mini"
	OpenAIBaseURL string

	MaxTokens int
}
