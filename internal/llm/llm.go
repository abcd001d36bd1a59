package llm

import (
	"fmt"
)

// creates the configured generator. returns ErrNoProvider when no usable key is set
// so callers can fall back to extractive answers.
func NewGenerator(config Config) (Generator, error) {
	if config.Provider != "" && config.Provider != ProviderCohere && config.Provider != ProviderOpenAI {
		return nil, fmt.Errorf("unsupported generator provider: %s", config.Provider)
	}

	switch config.resolveProvider() {
	case ProviderCohere:
		return NewCohereGenerator(CohereConfig{
			APIKey:    config.CohereAPIKey,
			Model:     config.CohereModel,
			BaseURL:   config.CohereBaseURL,
			MaxTokens: config.MaxTokens,
		}), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:    config.OpenAIAPIKey,
			Model:     config.OpenAIModel,
			BaseURL:   config.OpenAIBaseURL,
			MaxTokens: config.MaxTokens,
		}), nil
	default:
		return nil, ErrNoProvider
	}
}
