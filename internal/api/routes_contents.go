package api

import (
	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/handlers"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
)

func registerContentRoutes(api *gin.RouterGroup, contents *handlers.ContentHandler) {
	group := api.Group("/contents")
	{
		group.GET("", contents.List)

		group.POST("", middleware.RequireAdmin(), contents.Create)
		group.DELETE("/:contentID", middleware.RequireAdmin(), contents.Delete)
	}
}
