package query

import "github.com/gin-gonic/gin"

// limit runs before the handler, typically the rate limiter
func RegisterRoutes(router gin.IRoutes, answerer Answerer, limit gin.HandlerFunc) {
	router.POST("/query", limit, QueryHandler(answerer))
}
