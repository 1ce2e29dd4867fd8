package api

import (
	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/handlers"
)

func registerChatRoutes(api *gin.RouterGroup, chat *handlers.ChatHandler) {
	group := api.Group("/chat")
	{
		group.POST("/messages", chat.Send)
		group.GET("/conversations/:userID", chat.ListConversation)
		group.GET("/broadcasts", chat.ListBroadcasts)
	}
}
