package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hamza49699/physical-ai-textbook/api/rest/documents"
	"github.com/hamza49699/physical-ai-textbook/api/rest/health"
	"github.com/hamza49699/physical-ai-textbook/api/rest/ingest"
	"github.com/hamza49699/physical-ai-textbook/api/rest/query"
)

// sets up all API routes and middleware.
// routes are served both at the root (what the chat widget calls) and under /api/v1.
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.FrontendURL))

	rag := server.services.RAG
	limit := server.services.Limiter.Middleware()

	router.GET("/", health.IndexHandler(rag))

	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api/v1")} {
		health.RegisterRoutes(group, rag)
		query.RegisterRoutes(group, rag, limit)
		ingest.RegisterRoutes(group, rag, limit)
		documents.RegisterRoutes(group, rag)
	}
}
