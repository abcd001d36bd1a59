package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/hamza49699/physical-ai-textbook/internal/ratelimit"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds the pipeline and request throttling
type Services struct {
	RAG     *rag.Service
	Limiter *ratelimit.Limiter
}
