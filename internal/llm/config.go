package llm

import "strings"

const (
	defaultCohereModel = "command-r-plus"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultMaxTokens   = 1024
	defaultTemperature = 0.3
)

// keys left at their .env.example value count as unset
func UsableKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	lower := strings.ToLower(key)

	return !strings.HasPrefix(lower, "your-") &&
		!strings.HasPrefix(lower, "your_") &&
		!strings.Contains(lower, "your_key_here")
}

// picks the provider to use, or "" when nothing is configured
func (c Config) resolveProvider() Provider {
	switch c.Provider {
	case ProviderCohere:
		if UsableKey(c.CohereAPIKey) {
			return ProviderCohere
		}
		return ""
	case ProviderOpenAI:
		if UsableKey(c.OpenAIAPIKey) {
			return ProviderOpenAI
		}
		return ""
	}

	if UsableKey(c.CohereAPIKey) {
		return ProviderCohere
	}

	if UsableKey(c.OpenAIAPIKey) {
		return ProviderOpenAI
	}

	return ""
}
