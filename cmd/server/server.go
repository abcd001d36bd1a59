package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/internal/app"
	"github.com/hamza49699/physical-ai-textbook/internal/config"
	"github.com/hamza49699/physical-ai-textbook/internal/errors"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	db, err := app.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// report json field names in validation errors
	errors.RegisterJSONTagNames()

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	server := &Server{
		db:       db,
		config:   cfg,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
