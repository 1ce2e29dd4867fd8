package api

import (
	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/handlers"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
)

func registerHonorRoutes(api *gin.RouterGroup, honors *handlers.HonorHandler, wishes *handlers.WishHandler) {
	group := api.Group("/honors")
	{
		group.GET("/:honorID", honors.Get)
		group.GET("/:honorID/wishes", wishes.List)
		group.POST("/:honorID/wishes", wishes.Add)

		group.POST("", middleware.RequireAdmin(), honors.Grant)
		group.PATCH("/:honorID/description", honors.UpdateDescription)
	}
}

func registerHonorTypeRoutes(api *gin.RouterGroup, types *handlers.HonorTypeHandler) {
	group := api.Group("/honor-types")
	{
		group.GET("", types.List)
		group.GET("/:typeID", types.Get)

		group.POST("", middleware.RequireAdmin(), types.Create)
	}
}
