package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey    string
	Model     string // e.g., "gpt-4o-mini"
	BaseURL   string // overrides https://api.openai.com/v1
	MaxTokens int
}

type OpenAIGenerator struct {
	config OpenAIConfig
	client *openai.Client
}

func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	return &OpenAIGenerator{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (g *OpenAIGenerator) Provider() Provider {
	return ProviderOpenAI
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

// sends the documents in the system message and the query as the user turn
func (g *OpenAIGenerator) Generate(ctx context.Context, in GenerateRequest) (string, error) {
	temperature := in.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	system := groundingPreamble
	if len(in.Documents) > 0 {
		system += "\n\nDocuments:\n\n" + buildDocumentsBlock(in.Documents)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: temperature,
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: in.Query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from openai")
	}

	return text, nil
}
