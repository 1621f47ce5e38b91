package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	ws "github.com/thereayou/chatrooms/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub            *ws.Hub
	messageHandler *MessageHandler
	upgrader       websocket.Upgrader
	clientOpts     ws.ClientOptions
	log            *slog.Logger
}

func NewWebSocketHandler(hub *ws.Hub, messageHandler *MessageHandler, origins []string, opts ws.ClientOptions, log *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		messageHandler: messageHandler,
		clientOpts:     opts,
		log:            log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
	}
}

// HandleWebSocket обрабатывает WebSocket соединения
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", c.ClientIP(), "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn, h.clientOpts)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.messageHandler)
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and those whose origin is listed. "*" allows everything.
func originChecker(origins []string) func(r *http.Request) bool {
	allowAll := lo.Contains(origins, "*")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return allowAll || origin == "" || lo.Contains(origins, origin)
	}
}
