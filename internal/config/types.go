package config

import "time"

type Config struct {
	DatabaseURL string
	Environment string
	Port        string
	FrontendURL string

	VectorBackend    string
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	GeneratorProvider string
	CohereAPIKey      string
	CohereModel       string
	OpenAIAPIKey      string
	OpenAIModel       string

	TopK              int
	ScoreThreshold    float64
	ChunkSize         int
	ChunkOverlapWords int

	StoreTimeout      time.Duration
	VectorTimeout     time.Duration
	GenerationTimeout time.Duration

	RateLimit string
	RedisURL  string
}

const (
	BackendQdrant   = "qdrant"
	BackendPGVector = "pgvector"
	BackendMemory   = "memory"
)

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
