package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/hamza49699/physical-ai-textbook/internal/chunker"
	"github.com/hamza49699/physical-ai-textbook/internal/composer"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/embedder"
	"github.com/hamza49699/physical-ai-textbook/internal/llm"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/hamza49699/physical-ai-textbook/internal/retriever"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pipeline is everything a process needs to answer and ingest
type Pipeline struct {
	Pool    *pgxpool.Pool
	Store   *storage.Client
	Index   vectorindex.Index
	Service *rag.Service
}

// opens a small pool suited to hosted postgres poolers
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// free tier poolers allow ~10-15 connections, keep ours small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgbouncer in transaction mode doesn't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// picks the vector backend named in the configuration
func NewIndex(cfg *config.Config, pool *pgxpool.Pool) (vectorindex.Index, error) {
	switch cfg.VectorBackend {
	case config.BackendQdrant:
		return vectorindex.NewQdrant(vectorindex.QdrantConfig{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.QdrantCollection,
			Dimension:  embedder.Dimension,
			Timeout:    cfg.VectorTimeout,
		}), nil
	case config.BackendPGVector:
		return vectorindex.NewPGVector(pool, embedder.Dimension), nil
	case config.BackendMemory:
		return vectorindex.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}

// generative when a provider key is configured, excerpt otherwise
func NewComposer(cfg *config.Config) (composer.Composer, error) {
	generator, err := llm.NewGenerator(llm.Config{
		Provider:     llm.Provider(cfg.GeneratorProvider),
		CohereAPIKey: cfg.CohereAPIKey,
		CohereModel:  cfg.CohereModel,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
	})

	if stderrors.Is(err, llm.ErrNoProvider) {
		logger.Warn("no generation provider configured, answering with excerpts")
		return composer.New(nil, cfg.GenerationTimeout), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	logger.Info("generator configured",
		"provider", generator.Provider(),
		"model", generator.Model(),
	)

	return composer.New(generator, cfg.GenerationTimeout), nil
}

// builds the full pipeline on top of an open pool. the schema and vector
// collection are created when missing.
func NewPipeline(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*Pipeline, error) {
	store := storage.NewClientFromPool(pool)

	if err := store.Bootstrap(ctx); err != nil {
		return nil, err
	}

	index, err := NewIndex(cfg, pool)
	if err != nil {
		return nil, err
	}

	if err := index.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare %s collection: %w", index.Name(), err)
	}

	comp, err := NewComposer(cfg)
	if err != nil {
		return nil, err
	}

	r := retriever.New(index, retriever.Config{
		TopK:           cfg.TopK,
		ScoreThreshold: cfg.ScoreThreshold,
	})

	service := rag.New(store, index, r, comp, rag.Config{
		TopK: cfg.TopK,
		Chunking: chunker.Options{
			MaxSize:      cfg.ChunkSize,
			OverlapWords: cfg.ChunkOverlapWords,
		},
		StoreTimeout:  cfg.StoreTimeout,
		VectorTimeout: cfg.VectorTimeout,
	})

	logger.Info("rag pipeline ready",
		"vector_backend", index.Name(),
		"composer", comp.Mode(),
		"top_k", cfg.TopK,
		"score_threshold", cfg.ScoreThreshold,
	)

	return &Pipeline{
		Pool:    pool,
		Store:   store,
		Index:   index,
		Service: service,
	}, nil
}
