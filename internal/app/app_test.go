package app

import (
	"testing"

	"github.com/hamza49699/physical-ai-textbook/internal/composer"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	tests := []struct {
		backend  string
		wantName string
		wantErr  bool
	}{
		{config.BackendQdrant, "qdrant", false},
		{config.BackendMemory, "memory", false},
		{"elastic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			index, err := NewIndex(&config.Config{
				VectorBackend:    tt.backend,
				QdrantURL:        "http://localhost:6333",
				QdrantCollection: "physical-ai-textbook",
			}, nil)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, index.Name())
		})
	}
}

func TestNewComposerWithoutKeysUsesExcerpts(t *testing.T) {
	comp, err := NewComposer(&config.Config{
		CohereAPIKey: "your-cohere-api-key",
	})

	require.NoError(t, err)
	assert.Equal(t, composer.ModeExcerpt, comp.Mode())
}

func TestNewComposerWithKey(t *testing.T) {
	comp, err := NewComposer(&config.Config{
		GeneratorProvider: "openai",
		OpenAIAPIKey:      "sk-test",
	})

	require.NoError(t, err)
	assert.Equal(t, composer.ModeGenerative, comp.Mode())
}
