package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chatrooms/internal/config"
	"github.com/thereayou/chatrooms/internal/handlers"
	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/pkg/auth"
)

type Handlers struct {
	Rooms    *handlers.RoomHandler
	Messages *handlers.HTTPMessageHandler
	Health   *handlers.HealthHandler
	WS       *handlers.WebSocketHandler
}

// Gates guard the chat routes. A nil gate leaves the routes open.
type Gates struct {
	API gin.HandlerFunc
	WS  gin.HandlerFunc
}

func gates(cfg *config.Config, jwtMgr *auth.JWTManager, rdb *redis.Client) Gates {
	if !cfg.RequireAuth || jwtMgr == nil {
		return Gates{}
	}
	return Gates{
		API: middleware.AuthMiddleware(jwtMgr, rdb),
		WS:  middleware.WSAuthMiddleware(jwtMgr, rdb),
	}
}

func APIEndpoints(r *gin.Engine, h Handlers, g Gates) {
	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	if g.API != nil {
		api.Use(g.API)
	}

	// Chatroom endpoints
	rooms := api.Group("/chatrooms")
	{
		rooms.POST("/create", h.Rooms.CreateRoom)
		rooms.GET("/get-chatrooms", h.Rooms.GetRooms)
		rooms.DELETE("/delete-chatrooms", h.Rooms.DeleteRoom)
	}

	// Message endpoints
	messages := api.Group("/messages")
	{
		messages.POST("/send-message", h.Messages.SendMessage)
		messages.POST("/get-messages", h.Messages.GetMessages)
	}

	if g.WS != nil {
		r.GET("/ws", g.WS, h.WS.HandleWebSocket)
	} else {
		r.GET("/ws", h.WS.HandleWebSocket)
	}
}
