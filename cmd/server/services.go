package main

import (
	"context"
	"fmt"

	"github.com/hamza49699/physical-ai-textbook/internal/app"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/hamza49699/physical-ai-textbook/internal/ratelimit"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (*Services, error) {
	pipeline, err := app.NewPipeline(ctx, cfg, db)
	if err != nil {
		return nil, fmt.Errorf("failed to build rag pipeline: %w", err)
	}

	limiter, err := ratelimit.New(ctx, cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	logger.Info("rate limiter initialized",
		"rate", cfg.RateLimit,
		"backend", limiter.Backend(),
	)

	return &Services{
		RAG:     pipeline.Service,
		Limiter: limiter,
	}, nil
}
