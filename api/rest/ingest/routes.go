package ingest

import "github.com/gin-gonic/gin"

// limit runs before each handler, typically the rate limiter
func RegisterRoutes(router gin.IRoutes, ingester Ingester, limit gin.HandlerFunc) {
	router.POST("/ingest", limit, IngestHandler(ingester))
	router.POST("/reset", limit, ResetHandler(ingester))
}
