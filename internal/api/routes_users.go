package api

import (
	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/handlers"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
)

func registerUserRoutes(api *gin.RouterGroup, users *handlers.UserHandler, honors *handlers.HonorHandler) {
	group := api.Group("/users")
	{
		group.GET("", users.List)
		group.GET("/:userID", users.Get)
		group.GET("/:userID/honors", honors.ListForUser)

		group.POST("", middleware.RequireAdmin(), users.Create)
	}
}
