package health

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, checker Checker) {
	router.GET("/health", Handler(checker))
	router.GET("/health/db", DatabaseHandler(checker))
	router.GET("/health/vector", VectorHandler(checker))
	// kept for clients written against the qdrant-only deployment
	router.GET("/health/qdrant", VectorHandler(checker))
}
