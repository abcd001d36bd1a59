package documents

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, lister Lister) {
	router.GET("/documents", ListDocumentsHandler(lister))
}
