package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
)

// @title Physical AI Textbook API
// @version 1.0.0
// @description Retrieval-augmented question answering over the Physical AI & Humanoid Robotics textbook
// @description
// @description Features:
// @description - Answers grounded in indexed textbook chunks with chapter/section citations
// @description - Document ingestion with chunking and lightweight hashed embeddings
// @description - Optional answer generation via Cohere or OpenAI

// @license.name MIT

func main() {
	logger.Info("starting physical ai textbook server")

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Configure(cfg.Environment, os.Getenv("LOG_LEVEL"))

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation can take a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.services.Limiter.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown

	srv.db.Close()

	logger.Info("server stopped")
}
