package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loads configuration from .env (when present) and the environment
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Load(os.Getenv)
}

// builds a Config from a lookup function so tests can supply their own environment
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL: getenv("DATABASE_URL"),
		Environment: withDefault(getenv("ENVIRONMENT"), "development"),
		Port:        withDefault(getenv("PORT"), "8000"),
		FrontendURL: withDefault(getenv("FRONTEND_URL"), "http://localhost:3000"),

		VectorBackend:    strings.ToLower(withDefault(getenv("VECTOR_BACKEND"), BackendQdrant)),
		QdrantURL:        getenv("QDRANT_URL"),
		QdrantAPIKey:     placeholderToEmpty(getenv("QDRANT_API_KEY")),
		QdrantCollection: withDefault(getenv("QDRANT_COLLECTION"), "physical-ai-textbook"),

		GeneratorProvider: strings.ToLower(getenv("GENERATOR_PROVIDER")),
		CohereAPIKey:      placeholderToEmpty(getenv("COHERE_API_KEY")),
		CohereModel:       withDefault(getenv("COHERE_MODEL"), "command-r-plus"),
		OpenAIAPIKey:      placeholderToEmpty(getenv("OPENAI_API_KEY")),
		OpenAIModel:       withDefault(getenv("OPENAI_MODEL"), "gpt-4o-mini"),

		RateLimit: withDefault(getenv("RATE_LIMIT"), "60-M"),
		RedisURL:  getenv("REDIS_URL"),
	}

	var err error

	if cfg.TopK, err = intVar(getenv, "RAG_TOP_K", 5); err != nil {
		return nil, err
	}

	if cfg.ScoreThreshold, err = floatVar(getenv, "RAG_SCORE_THRESHOLD", 0.2); err != nil {
		return nil, err
	}

	if cfg.ChunkSize, err = intVar(getenv, "CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}

	if cfg.ChunkOverlapWords, err = intVar(getenv, "CHUNK_OVERLAP_WORDS", 20); err != nil {
		return nil, err
	}

	if cfg.StoreTimeout, err = durationVar(getenv, "STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.VectorTimeout, err = durationVar(getenv, "VECTOR_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	if cfg.GenerationTimeout, err = durationVar(getenv, "GENERATION_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	switch c.VectorBackend {
	case BackendQdrant:
		if c.QdrantURL == "" {
			return fmt.Errorf("QDRANT_URL environment variable is required when VECTOR_BACKEND=qdrant")
		}
	case BackendPGVector, BackendMemory:
	default:
		return fmt.Errorf("unsupported VECTOR_BACKEND: %s", c.VectorBackend)
	}

	if c.TopK <= 0 {
		return fmt.Errorf("RAG_TOP_K must be positive")
	}

	if c.ScoreThreshold < 0 {
		return fmt.Errorf("RAG_SCORE_THRESHOLD must not be negative")
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive")
	}

	if c.ChunkOverlapWords < 0 {
		return fmt.Errorf("CHUNK_OVERLAP_WORDS must not be negative")
	}

	return nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return strings.TrimSpace(value)
}

// values copied from .env.example ("your-...") are treated as unset
func placeholderToEmpty(value string) string {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	if strings.HasPrefix(lower, "your-") || strings.HasPrefix(lower, "your_") {
		return ""
	}

	return value
}

func intVar(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return val, nil
}

func floatVar(getenv func(string) string, key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	return val, nil
}

// accepts Go durations ("15s") or bare seconds ("15")
func durationVar(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	return val, nil
}
